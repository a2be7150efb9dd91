package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// CreateReviewDTO for posting a review on a title
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO for PATCH on an existing review (partial updates allowed)
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=1,max=10"`
}

func (d UpdateReviewDTO) ApplyTo(review *models.Review) {
	if d.Text != nil {
		review.Text = *d.Text
	}
	if d.Score != nil {
		review.Score = *d.Score
	}
}

// ReviewResponse resolves author and title to their readable slugs; both are
// read-only on the wire.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
	Title   string    `json:"title"`
}

func FromModelToReviewResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.PubDate,
		Title:   review.Title.Name,
	}
}
