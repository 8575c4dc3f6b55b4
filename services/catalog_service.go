package services

import (
	"context"
	"errors"

	"bookstore-api/auth"
	"bookstore-api/models"
	"bookstore-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookListCache is the read cache consulted for the full book listing.
// Implementations must tolerate being nil-checked; a nil cache disables
// caching entirely.
type BookListCache interface {
	GetBookList(ctx context.Context) ([]models.Book, bool)
	SetBookList(books []models.Book)
	Invalidate(ctx context.Context)
}

// CatalogService covers book and genre reads plus the Admin-only catalog
// mutations, including maintenance of the genre book-count counter.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]models.Book, *ServiceError)
	GetBook(ctx context.Context, bookID uuid.UUID) (*models.Book, *ServiceError)
	SearchBooks(ctx context.Context, title, author string) ([]models.Book, *ServiceError)
	FilterBooks(ctx context.Context, filters models.BookFilters) ([]models.Book, *ServiceError)
	CreateBook(ctx context.Context, id auth.Identity, req *models.CreateBookRequest) (*models.Book, *ServiceError)
	UpdateBook(ctx context.Context, id auth.Identity, bookID uuid.UUID, req *models.UpdateBookRequest) (*models.Book, *ServiceError)
	DeleteBook(ctx context.Context, id auth.Identity, bookID uuid.UUID) (*models.Book, *ServiceError)

	ListGenres(ctx context.Context) ([]models.Genre, *ServiceError)
	GetGenre(ctx context.Context, genreID uuid.UUID) (*models.Genre, *ServiceError)
	CreateGenre(ctx context.Context, id auth.Identity, req *models.GenreRequest) (*models.Genre, *ServiceError)
	UpdateGenre(ctx context.Context, id auth.Identity, genreID uuid.UUID, req *models.GenreRequest) (*models.Genre, *ServiceError)
	DeleteGenre(ctx context.Context, id auth.Identity, genreID uuid.UUID) (*models.Genre, *ServiceError)
}

type catalogServiceImpl struct {
	store  repository.Store
	cache  BookListCache
	logger *zap.Logger
}

func NewCatalogService(store repository.Store, cache BookListCache, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{store: store, cache: cache, logger: logger}
}

func (s *catalogServiceImpl) ListBooks(ctx context.Context) ([]models.Book, *ServiceError) {
	if s.cache != nil {
		if books, ok := s.cache.GetBookList(ctx); ok {
			return books, nil
		}
	}

	books, err := s.store.Books().FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list books", zap.Error(err))
		return nil, internalError("An error occurred while retrieving books.", err)
	}

	if s.cache != nil {
		s.cache.SetBookList(books)
	}
	return books, nil
}

func (s *catalogServiceImpl) GetBook(ctx context.Context, bookID uuid.UUID) (*models.Book, *ServiceError) {
	book, err := s.store.Books().FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Book not found!"}
		}
		s.logger.Error("Failed to fetch book", zap.Error(err))
		return nil, internalError("An error occurred while retrieving the book.", err)
	}
	return book, nil
}

func (s *catalogServiceImpl) SearchBooks(ctx context.Context, title, author string) ([]models.Book, *ServiceError) {
	books, err := s.store.Books().Search(ctx, title, author)
	if err != nil {
		s.logger.Error("Book search failed", zap.Error(err))
		return nil, internalError("An error occurred while searching books.", err)
	}
	return books, nil
}

func (s *catalogServiceImpl) FilterBooks(ctx context.Context, filters models.BookFilters) ([]models.Book, *ServiceError) {
	books, err := s.store.Books().Filter(ctx, filters)
	if err != nil {
		s.logger.Error("Book filter failed", zap.Error(err))
		return nil, internalError("An error occurred while filtering books.", err)
	}
	return books, nil
}

// CreateBook inserts the book and increments its genre's book-count in one
// transaction.
func (s *catalogServiceImpl) CreateBook(ctx context.Context, id auth.Identity, req *models.CreateBookRequest) (*models.Book, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	book := &models.Book{
		ID:      uuid.New(),
		Title:   req.Title,
		Author:  req.Author,
		Price:   req.Price,
		Stock:   req.Stock,
		GenreID: req.GenreID,
	}

	var svcErr *ServiceError
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Genres().FindByID(ctx, req.GenreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				svcErr = &ServiceError{StatusCode: 400, Message: "Invalid GenreId."}
			}
			return err
		}
		if err := tx.Books().Create(ctx, book); err != nil {
			return err
		}
		return tx.Genres().IncrementBookCount(ctx, req.GenreID, 1)
	})
	if err != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.Error("Failed to create book", zap.Error(err))
		return nil, internalError("An error occurred while creating the book.", err)
	}

	s.invalidateBooks(ctx)
	s.logger.Info("Book created", zap.String("title", book.Title), zap.String("book_id", book.ID.String()))
	return book, nil
}

// UpdateBook replaces the book's fields; when the genre reference changes,
// the old genre's count is decremented (clamped at zero) and the new one's
// incremented in the same transaction.
func (s *catalogServiceImpl) UpdateBook(ctx context.Context, id auth.Identity, bookID uuid.UUID, req *models.UpdateBookRequest) (*models.Book, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}
	if bookID != req.ID {
		return nil, &ServiceError{StatusCode: 400, Message: "ID mismatch!"}
	}

	var updated *models.Book
	var svcErr *ServiceError
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Books().FindByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				svcErr = &ServiceError{StatusCode: 404, Message: "Book not found!"}
			}
			return err
		}

		if existing.GenreID != req.GenreID {
			if _, err := tx.Genres().FindByID(ctx, req.GenreID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					svcErr = &ServiceError{StatusCode: 400, Message: "New genre not found!"}
				}
				return err
			}
			if err := tx.Genres().IncrementBookCount(ctx, existing.GenreID, -1); err != nil {
				return err
			}
			if err := tx.Genres().IncrementBookCount(ctx, req.GenreID, 1); err != nil {
				return err
			}
		}

		existing.Title = req.Title
		existing.Author = req.Author
		existing.Price = req.Price
		existing.Stock = req.Stock
		existing.GenreID = req.GenreID
		if err := tx.Books().Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.Error("Failed to update book", zap.Error(err))
		return nil, internalError("An error occurred while updating the book.", err)
	}

	s.invalidateBooks(ctx)
	return updated, nil
}

// DeleteBook removes the book and decrements its genre's book-count in the
// same transaction.
func (s *catalogServiceImpl) DeleteBook(ctx context.Context, id auth.Identity, bookID uuid.UUID) (*models.Book, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	var deleted *models.Book
	var svcErr *ServiceError
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		book, err := tx.Books().FindByID(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				svcErr = &ServiceError{StatusCode: 404, Message: "Book not found!"}
			}
			return err
		}
		if err := tx.Books().Delete(ctx, bookID); err != nil {
			return err
		}
		if err := tx.Genres().IncrementBookCount(ctx, book.GenreID, -1); err != nil {
			return err
		}
		deleted = book
		return nil
	})
	if err != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.Error("Failed to delete book", zap.Error(err))
		return nil, internalError("An error occurred while deleting the book.", err)
	}

	s.invalidateBooks(ctx)
	return deleted, nil
}

func (s *catalogServiceImpl) ListGenres(ctx context.Context) ([]models.Genre, *ServiceError) {
	genres, err := s.store.Genres().FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list genres", zap.Error(err))
		return nil, internalError("An error occurred while retrieving genres.", err)
	}
	return genres, nil
}

func (s *catalogServiceImpl) GetGenre(ctx context.Context, genreID uuid.UUID) (*models.Genre, *ServiceError) {
	genre, err := s.store.Genres().FindByID(ctx, genreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Genre not found!"}
		}
		s.logger.Error("Failed to fetch genre", zap.Error(err))
		return nil, internalError("An error occurred while retrieving the genre.", err)
	}
	return genre, nil
}

func (s *catalogServiceImpl) CreateGenre(ctx context.Context, id auth.Identity, req *models.GenreRequest) (*models.Genre, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	genre := &models.Genre{ID: uuid.New(), Name: req.Name}
	if err := s.store.Genres().Create(ctx, genre); err != nil {
		s.logger.Error("Failed to create genre", zap.Error(err))
		return nil, internalError("An error occurred while creating the genre.", err)
	}
	return genre, nil
}

func (s *catalogServiceImpl) UpdateGenre(ctx context.Context, id auth.Identity, genreID uuid.UUID, req *models.GenreRequest) (*models.Genre, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	genre, err := s.store.Genres().FindByID(ctx, genreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Genre not found!"}
		}
		s.logger.Error("Failed to fetch genre", zap.Error(err))
		return nil, internalError("An error occurred while updating the genre.", err)
	}

	genre.Name = req.Name
	if err := s.store.Genres().Update(ctx, genre); err != nil {
		s.logger.Error("Failed to update genre", zap.Error(err))
		return nil, internalError("An error occurred while updating the genre.", err)
	}
	return genre, nil
}

func (s *catalogServiceImpl) DeleteGenre(ctx context.Context, id auth.Identity, genreID uuid.UUID) (*models.Genre, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	genre, err := s.store.Genres().FindByID(ctx, genreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Genre not found!"}
		}
		s.logger.Error("Failed to fetch genre", zap.Error(err))
		return nil, internalError("An error occurred while deleting the genre.", err)
	}

	if err := s.store.Genres().Delete(ctx, genreID); err != nil {
		s.logger.Error("Failed to delete genre", zap.Error(err))
		return nil, internalError("An error occurred while deleting the genre.", err)
	}
	return genre, nil
}

func (s *catalogServiceImpl) invalidateBooks(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
