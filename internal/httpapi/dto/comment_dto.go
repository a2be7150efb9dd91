package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// CreateCommentDTO for posting a comment on a review
type CreateCommentDTO struct {
	Text string `json:"text" binding:"required,max=200"`
}

// UpdateCommentDTO for PATCH on an existing comment
type UpdateCommentDTO struct {
	Text *string `json:"text,omitempty" binding:"omitempty,max=200"`
}

func (d UpdateCommentDTO) ApplyTo(comment *models.Comment) {
	if d.Text != nil {
		comment.Text = *d.Text
	}
}

// CommentResponse resolves the author to a username, read-only on the wire.
type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  comment.Author.Username,
		PubDate: comment.PubDate,
	}
}
