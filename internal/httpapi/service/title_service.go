package service

import (
	"context"
	"math"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page dto.PageParams) (*dto.PaginatedResponse[dto.TitleResponse], error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
	ratingCache  *RatingCache
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
	ratingCache *RatingCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
		ratingCache:  ratingCache,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page dto.PageParams) (*dto.PaginatedResponse[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	averages, err := s.reviewRepo.AverageScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *int
		if avg, ok := averages[titles[i].ID]; ok {
			rounded := roundRating(avg)
			rating = &rounded
		}
		results = append(results, dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return dto.NewPaginatedResponse(results, total), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.ratingFor(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToTitleResponse(title, rating)
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	category, genres, ferr := s.resolveRefs(ctx, req.Category, &req.Genre)
	if ferr != nil {
		return nil, ferr
	}

	title := models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Create(ctx, &title, genres); err != nil {
		return nil, err
	}

	title.Category = category
	title.Genres = genres
	resp := dto.FromModelToTitleResponse(&title, nil)
	return &resp, nil
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category, genres, ferr := s.resolveRefs(ctx, req.Category, req.Genre)
	if ferr != nil {
		return nil, ferr
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if category != nil {
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}
	if req.Genre != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	rating, err := s.ratingFor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToTitleResponse(title, rating)
	return &resp, nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.ratingCache.Invalidate(ctx, id)
	return nil
}

// resolveRefs turns the slug references of a title write into rows, with
// field-scoped errors for unknown slugs. genre == nil means "leave the
// genre set untouched".
func (s *titleService) resolveRefs(ctx context.Context, categorySlug *string, genreSlugs *[]string) (*models.Category, []models.Genre, error) {
	fe := dto.FieldErrors{}

	var category *models.Category
	if categorySlug != nil {
		found, err := s.categoryRepo.FindBySlug(ctx, *categorySlug)
		if err != nil {
			fe.Add("category", "Object with slug="+*categorySlug+" does not exist.")
		} else {
			category = found
		}
	}

	var genres []models.Genre
	if genreSlugs != nil && len(*genreSlugs) > 0 {
		found, err := s.genreRepo.FindBySlugs(ctx, *genreSlugs)
		if err != nil {
			return nil, nil, err
		}
		known := make(map[string]bool, len(found))
		for _, genre := range found {
			known[genre.Slug] = true
		}
		for _, slug := range *genreSlugs {
			if !known[slug] {
				fe.Add("genre", "Object with slug="+slug+" does not exist.")
			}
		}
		genres = found
	}

	if len(fe) > 0 {
		return nil, nil, fe
	}
	return category, genres, nil
}

// ratingFor serves the derived rating, preferring the cache.
func (s *titleService) ratingFor(ctx context.Context, titleID int64) (*int, error) {
	if rating, ok := s.ratingCache.Get(ctx, titleID); ok {
		return rating, nil
	}

	avg, err := s.reviewRepo.AverageScore(ctx, titleID)
	if err != nil {
		return nil, err
	}

	var rating *int
	if avg != nil {
		rounded := roundRating(*avg)
		rating = &rounded
	}
	s.ratingCache.Set(ctx, titleID, rating)
	return rating, nil
}

// roundRating rounds the mean score half away from zero to an integer.
func roundRating(avg float64) int {
	return int(math.Round(avg))
}
