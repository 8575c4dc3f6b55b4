package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string    `gorm:"not null;index" json:"title"`
	Author    string    `gorm:"not null;index" json:"author"`
	Price     float64   `gorm:"not null" json:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	GenreID   uuid.UUID `gorm:"type:uuid;not null;index" json:"genre_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Genre struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	BookCount int       `gorm:"not null;default:0" json:"book_count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type CreateBookRequest struct {
	Title   string    `json:"title" binding:"required"`
	Author  string    `json:"author" binding:"required"`
	Price   float64   `json:"price" binding:"min=0"`
	Stock   int       `json:"stock" binding:"min=0"`
	GenreID uuid.UUID `json:"genre_id" binding:"required"`
}

type UpdateBookRequest struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	Title   string    `json:"title" binding:"required"`
	Author  string    `json:"author" binding:"required"`
	Price   float64   `json:"price" binding:"min=0"`
	Stock   int       `json:"stock" binding:"min=0"`
	GenreID uuid.UUID `json:"genre_id" binding:"required"`
}

type GenreRequest struct {
	Name string `json:"name" binding:"required"`
}

// BookFilters narrows a catalog listing. Nil fields are ignored.
type BookFilters struct {
	GenreID  *uuid.UUID
	MinPrice *float64
	MaxPrice *float64
}
