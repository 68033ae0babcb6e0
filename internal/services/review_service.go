package services

import (
	"context"
	"fmt"

	"umkami/internal/models"
	"umkami/internal/repositories"
)

// ReviewService handles business logic for customer reviews.
type ReviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
	}
}

// GetReviews retrieves a business's reviews. Legacy bare-string reviews are
// already normalized at the decode boundary, but stored rows may predate
// that, so blank authors are defaulted here too.
func (s *ReviewService) GetReviews(ctx context.Context, umkmID string) ([]models.Review, error) {
	reviews, err := s.repo.GetByUmkmID(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].Author == "" {
			reviews[i].Author = models.LegacyReviewAuthor
		}
	}
	return reviews, nil
}

// AddReview validates and persists a new review for a business.
func (s *ReviewService) AddReview(ctx context.Context, umkmID string, review *models.Review) error {
	if review.Comment == "" {
		return fmt.Errorf("review comment must not be empty")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("review rating must be between 1 and 5, got %.1f", review.Rating)
	}
	if review.Author == "" {
		review.Author = models.LegacyReviewAuthor
	}
	review.UmkmID = umkmID

	if err := s.repo.Create(ctx, review); err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}
