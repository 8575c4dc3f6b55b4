package repository

import (
	"context"

	"bookstore-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenreRepository defines the interface for genre data access.
type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	Update(ctx context.Context, genre *models.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)

	// IncrementBookCount atomically adjusts the derived book counter.
	// Decrements are clamped at zero.
	IncrementBookCount(ctx context.Context, id uuid.UUID, delta int) error
}

// GormGenreRepository implements GenreRepository using GORM.
type GormGenreRepository struct {
	db *gorm.DB
}

func NewGormGenreRepository(db *gorm.DB) *GormGenreRepository {
	return &GormGenreRepository{db: db}
}

func (r *GormGenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *GormGenreRepository) Update(ctx context.Context, genre *models.Genre) error {
	return r.db.WithContext(ctx).Save(genre).Error
}

func (r *GormGenreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Genre{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormGenreRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GormGenreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GormGenreRepository) IncrementBookCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", id)
	if delta < 0 {
		// clamp at zero
		query = query.Where("book_count >= ?", -delta)
	}
	return query.UpdateColumn("book_count", gorm.Expr("book_count + ?", delta)).Error
}
