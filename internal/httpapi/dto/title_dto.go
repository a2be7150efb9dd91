package dto

import (
	"time"

	"reviewhub/internal/httpapi/models"
)

// CreateTitleDTO used for POST /titles. Category and genres are slug
// references resolved by the service against existing rows.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genre       []string `json:"genre"`
}

func (d CreateTitleDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	if d.Year > time.Now().Year() {
		fe.Add("year", "Year cannot be in the future.")
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// UpdateTitleDTO used for PATCH /titles/:id (partial updates allowed)
type UpdateTitleDTO struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
}

func (d UpdateTitleDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	if d.Year != nil && *d.Year > time.Now().Year() {
		fe.Add("year", "Year cannot be in the future.")
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// TitleResponse is the read representation with nested category/genres and
// the derived rating: the rounded mean review score, null without reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
	Rating      *int              `json:"rating"`
}

func FromModelToTitleResponse(t *models.Title, rating *int) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for i := range t.Genres {
		genres = append(genres, FromModelToGenreResponse(&t.Genres[i]))
	}

	var category *CategoryResponse
	if t.Category != nil {
		c := FromModelToCategoryResponse(t.Category)
		category = &c
	}

	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
		Rating:      rating,
	}
}
