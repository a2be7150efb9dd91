package service

import (
	"context"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page dto.PageParams) (*dto.PaginatedResponse[dto.CategoryResponse], error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page dto.PageParams) (*dto.PaginatedResponse[dto.CategoryResponse], error) {
	categories, total, err := s.categoryRepo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		results = append(results, dto.FromModelToCategoryResponse(&categories[i]))
	}
	return dto.NewPaginatedResponse(results, total), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error) {
	category := req.ToModel()
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, dto.FieldErrors{"slug": {"Category with this slug already exists."}}
		}
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	return s.categoryRepo.DeleteBySlug(ctx, slug)
}
