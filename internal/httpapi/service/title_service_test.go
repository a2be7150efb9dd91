package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

func TestListTitles_RatingsFromBatchAverages(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	titleService := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo, nil)

	titles := []models.Title{
		{ID: 1, Name: "Rated", Year: 2001},
		{ID: 2, Name: "Unrated", Year: 2002},
	}
	mockTitleRepo.On("List", mock.Anything, repository.TitleFilter{}, 10, 0).
		Return(titles, int64(2), nil)
	mockReviewRepo.On("AverageScores", mock.Anything, []int64{1, 2}).
		Return(map[int64]float64{1: 7.5}, nil)

	resp, err := titleService.List(context.Background(), repository.TitleFilter{}, dto.PageParams{Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
	assert.Len(t, resp.Results, 2)
	// 7.5 rounds half away from zero.
	assert.NotNil(t, resp.Results[0].Rating)
	assert.Equal(t, 8, *resp.Results[0].Rating)
	// No reviews means a null rating, not zero.
	assert.Nil(t, resp.Results[1].Rating)
}

func TestGetTitle_NoReviewsNullRating(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	titleService := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo, nil)

	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.Title{ID: 1, Name: "Silent", Year: 1990}, nil)
	mockReviewRepo.On("AverageScore", mock.Anything, int64(1)).Return(nil, nil)

	resp, err := titleService.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.Nil(t, resp.Rating)
}

func TestGetTitle_RatingRounded(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	titleService := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo, nil)

	avg := 6.4
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&models.Title{ID: 1, Name: "Average", Year: 1990}, nil)
	mockReviewRepo.On("AverageScore", mock.Anything, int64(1)).Return(&avg, nil)

	resp, err := titleService.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Rating)
	assert.Equal(t, 6, *resp.Rating)
}

func TestCreateTitle_UnknownCategorySlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	titleService := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo, nil)

	category := "nope"
	mockCategoryRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	resp, err := titleService.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Orphan",
		Year:     2000,
		Category: &category,
	})

	assert.Nil(t, resp)
	var fe dto.FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "category")
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTitle_UnknownGenreSlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	titleService := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo, nil)

	mockGenreRepo.On("FindBySlugs", mock.Anything, []string{"scifi", "missing"}).
		Return([]models.Genre{{ID: 1, Name: "Sci-Fi", Slug: "scifi"}}, nil)

	resp, err := titleService.Create(context.Background(), dto.CreateTitleDTO{
		Name:  "Partial",
		Year:  2000,
		Genre: []string{"scifi", "missing"},
	})

	assert.Nil(t, resp)
	var fe dto.FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "genre")
}

func TestCreateTitle_Success(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockReviewRepo := new(MockReviewRepository)
	titleService := NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo, mockReviewRepo, nil)

	category := "books"
	genres := []models.Genre{{ID: 1, Name: "Sci-Fi", Slug: "scifi"}}
	mockCategoryRepo.On("FindBySlug", mock.Anything, "books").
		Return(&models.Category{ID: 5, Name: "Books", Slug: "books"}, nil)
	mockGenreRepo.On("FindBySlugs", mock.Anything, []string{"scifi"}).Return(genres, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title"), genres).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Title).ID = 11
		}).Return(nil)

	resp, err := titleService.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Dune",
		Year:     1965,
		Category: &category,
		Genre:    []string{"scifi"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.NotNil(t, resp.Category)
	assert.Equal(t, "books", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	// A freshly created title has no reviews yet.
	assert.Nil(t, resp.Rating)
	mockTitleRepo.AssertExpectations(t)
}

func TestRoundRating(t *testing.T) {
	tests := []struct {
		avg      float64
		expected int
	}{
		{1.0, 1},
		{6.4, 6},
		{6.5, 7},
		{7.5, 8},
		{9.99, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, roundRating(tt.avg))
	}
}
