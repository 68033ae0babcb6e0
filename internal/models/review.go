package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Defaults applied when a review arrives in the legacy bare-string form.
const (
	LegacyReviewAuthor = "Anonymous"
	LegacyReviewRating = 3.0
)

// Review is customer feedback for one business.
type Review struct {
	UmkmID  string  `json:"umkm_id" gorm:"index;type:varchar(36)"`
	Author  string  `json:"author" validate:"omitempty,max=100"`
	Comment string  `json:"comment" validate:"required,max=1000"`
	Rating  float32 `json:"rating" validate:"required,gte=1,lte=5"`
	gorm.Model `json:"-"`
}

// UnmarshalJSON accepts both the structured review object and the legacy
// format where a review was stored as a bare comment string. Legacy reviews
// are normalized with a default author and a neutral rating.
func (r *Review) UnmarshalJSON(data []byte) error {
	var comment string
	if err := json.Unmarshal(data, &comment); err == nil {
		r.Author = LegacyReviewAuthor
		r.Comment = comment
		r.Rating = LegacyReviewRating
		return nil
	}

	type reviewAlias Review // avoid recursing into this method
	var structured reviewAlias
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*r = Review(structured)
	if r.Author == "" {
		r.Author = LegacyReviewAuthor
	}
	return nil
}
