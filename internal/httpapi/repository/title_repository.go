package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// TitleFilter carries the query-param filters of the title listing.
// Category and genre match on slug substring, name on substring, year on
// its decimal rendering (which subsumes exact match).
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     string
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title, genres []models.Genre) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title, genres []models.Genre) error {
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.Create(title).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create title: %w", err)
	}
	if len(genres) > 0 {
		if err := tx.Model(title).Association("Genres").Append(&genres); err != nil {
			tx.Rollback()
			return fmt.Errorf("append genres: %w", err)
		}
	}
	return tx.Commit().Error
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	if err := r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error; err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(title).Association("Genres").Replace(&genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete title: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Title{})

	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != "" {
		query = query.Where("CAST(titles.year AS TEXT) LIKE ?", "%"+filter.Year+"%")
	}
	if filter.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.Genre != "" {
		query = query.
			Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug ILIKE ?", "%"+filter.Genre+"%").
			Distinct("titles.*")
	}

	// Count on a detached session; Distinct would otherwise stick to the
	// shared statement and strip columns from the Find below.
	if err := query.Session(&gorm.Session{}).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(limit).
		Offset(offset).
		Find(&titles).Error; err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}
