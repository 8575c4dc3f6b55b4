package repository

import (
	"context"

	"bookstore-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRepository defines the interface for book data access.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
	Search(ctx context.Context, title, author string) ([]models.Book, error)
	Filter(ctx context.Context, filters models.BookFilters) ([]models.Book, error)

	// DecrementStock subtracts quantity from the book's stock only when
	// enough stock remains, and reports whether a row was updated. A false
	// return means a concurrent checkout consumed the stock first.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}

// GormBookRepository implements BookRepository using GORM.
type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindAll(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) Search(ctx context.Context, title, author string) ([]models.Book, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})
	if title != "" {
		query = query.Where("title ILIKE ?", "%"+title+"%")
	}
	if author != "" {
		query = query.Where("author ILIKE ?", "%"+author+"%")
	}

	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) Filter(ctx context.Context, filters models.BookFilters) ([]models.Book, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})
	if filters.GenreID != nil {
		query = query.Where("genre_id = ?", *filters.GenreID)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}

	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
