package service

import (
	"context"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, page dto.PageParams) (*dto.PaginatedResponse[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, titleID int64, author *models.User, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, titleID, reviewID int64, actor *models.User, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, titleID, reviewID int64, actor *models.User) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
	ratingCache *RatingCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	ratingCache *RatingCache,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
		ratingCache: ratingCache,
	}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page dto.PageParams) (*dto.PaginatedResponse[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginatedResponse(results, total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, titleID int64, author *models.User, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	// Pre-check for a friendlier error; the unique index on
	// (title_id, author_id) arbitrates races.
	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(ctx, titleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	review := models.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	s.ratingCache.Invalidate(ctx, titleID)

	// Reload so author and title come back resolved.
	created, err := s.reviewRepo.GetByID(ctx, titleID, review.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToReviewResponse(created)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, actor *models.User, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !CanModify(actor, review.AuthorID) {
		return nil, ErrForbidden
	}

	req.ApplyTo(review)
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.ratingCache.Invalidate(ctx, titleID)

	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, actor *models.User) error {
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !CanModify(actor, review.AuthorID) {
		return ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, titleID, reviewID); err != nil {
		return err
	}
	s.ratingCache.Invalidate(ctx, titleID)
	return nil
}
