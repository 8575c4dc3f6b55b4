package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the per-entity repositories and lets services compose them
// inside one database transaction. Checkout and the genre book-count
// maintenance depend on Transaction for their all-or-nothing guarantees.
type Store interface {
	Users() UserRepository
	Books() BookRepository
	Genres() GenreRepository
	CartItems() CartRepository
	Orders() OrderRepository

	// Transaction runs fn against a store whose repositories share one
	// transaction. An error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(s Store) error) error
}

// GormStore implements Store over a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository     { return NewGormUserRepository(s.db) }
func (s *GormStore) Books() BookRepository     { return NewGormBookRepository(s.db) }
func (s *GormStore) Genres() GenreRepository   { return NewGormGenreRepository(s.db) }
func (s *GormStore) CartItems() CartRepository { return NewGormCartRepository(s.db) }
func (s *GormStore) Orders() OrderRepository   { return NewGormOrderRepository(s.db) }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}
