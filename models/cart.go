package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one pending line in a user's cart. Price is snapshotted from
// the book at the time the item was first added.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_user_book,unique" json:"user_id"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_user_book,unique" json:"book_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CartLine is a cart item joined with the live book record.
type CartLine struct {
	ID       uuid.UUID `json:"id"`
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Stock    int       `json:"-"`
}

type CartResponse struct {
	Items      []CartLine `json:"cartItems"`
	TotalPrice float64    `json:"totalPrice"`
}

type AddCartItemRequest struct {
	BookID   uuid.UUID `json:"bookId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	BookID   uuid.UUID `json:"bookId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}
