package dto

import "reviewhub/internal/httpapi/models"

// Categories and genres share the same name+slug wire shape.

// CreateCategoryDTO used for POST /categories
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required"`
}

func (d CreateCategoryDTO) Validate() FieldErrors {
	fe := FieldErrors{}
	ValidateSlug(d.Slug, fe)
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (d CreateCategoryDTO) ToModel() models.Category {
	return models.Category{Name: d.Name, Slug: d.Slug}
}

// CategoryResponse DTO for responses
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
