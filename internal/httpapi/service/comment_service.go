package service

import (
	"context"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page dto.PageParams) (*dto.PaginatedResponse[dto.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, titleID, reviewID int64, author *models.User, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page dto.PageParams) (*dto.PaginatedResponse[dto.CommentResponse], error) {
	// Resolving the review through its title 404s mismatched nesting.
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByReview(ctx, reviewID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	results := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedResponse(results, total), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, author *models.User, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, reviewID, comment.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCommentResponse(created)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !CanModify(actor, comment.AuthorID) {
		return nil, ErrForbidden
	}

	req.ApplyTo(comment)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User) error {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return err
	}

	if !CanModify(actor, comment.AuthorID) {
		return ErrForbidden
	}

	return s.commentRepo.Delete(ctx, reviewID, commentID)
}
