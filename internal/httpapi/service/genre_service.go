package service

import (
	"context"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type GenreService interface {
	List(ctx context.Context, search string, page dto.PageParams) (*dto.PaginatedResponse[dto.GenreResponse], error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, page dto.PageParams) (*dto.PaginatedResponse[dto.GenreResponse], error) {
	genres, total, err := s.genreRepo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		results = append(results, dto.FromModelToGenreResponse(&genres[i]))
	}
	return dto.NewPaginatedResponse(results, total), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*models.Genre, error) {
	genre := req.ToModel()
	if err := s.genreRepo.Create(ctx, &genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, dto.FieldErrors{"slug": {"Genre with this slug already exists."}}
		}
		return nil, err
	}
	return &genre, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	return s.genreRepo.DeleteBySlug(ctx, slug)
}
