package dto

import "reviewhub/internal/httpapi/models"

// CreateGenreDTO used for POST /genres
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required"`
}

func (d CreateGenreDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	ValidateSlug(d.Slug, fe)
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (d CreateGenreDTO) ToModel() models.Genre {
	return models.Genre{Name: d.Name, Slug: d.Slug}
}

// GenreResponse DTO for responses
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToGenreResponse(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
