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

// CartService manages a user's pending line items. Every operation requires
// the User role; items belonging to other users are reported as absent.
type CartService interface {
	GetCart(ctx context.Context, id auth.Identity) (*models.CartResponse, *ServiceError)
	AddItem(ctx context.Context, id auth.Identity, req *models.AddCartItemRequest) *ServiceError
	UpdateItem(ctx context.Context, id auth.Identity, itemID uuid.UUID, req *models.UpdateCartItemRequest) *ServiceError
	RemoveItem(ctx context.Context, id auth.Identity, itemID uuid.UUID) *ServiceError
	ClearCart(ctx context.Context, id auth.Identity) *ServiceError
}

type cartServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

func NewCartService(store repository.Store, logger *zap.Logger) CartService {
	return &cartServiceImpl{store: store, logger: logger}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, id auth.Identity) (*models.CartResponse, *ServiceError) {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return nil, svcErr
	}

	lines, err := s.store.CartItems().FindLinesByUser(ctx, id.UserID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, internalError("An error occurred while retrieving cart items.", err)
	}

	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.Price
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return &models.CartResponse{Items: lines, TotalPrice: total}, nil
}

// AddItem merges into the existing (user, book) row when present, otherwise
// creates one with the book's current price snapshotted.
func (s *cartServiceImpl) AddItem(ctx context.Context, id auth.Identity, req *models.AddCartItemRequest) *ServiceError {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return svcErr
	}

	book, err := s.store.Books().FindByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Book not found"}
		}
		s.logger.Error("Failed to fetch book for cart add", zap.Error(err))
		return internalError("An error occurred while adding item to cart.", err)
	}

	existing, err := s.store.CartItems().FindByUserAndBook(ctx, id.UserID, req.BookID)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if err := s.store.CartItems().Update(ctx, existing); err != nil {
			s.logger.Error("Failed to merge cart item", zap.Error(err))
			return internalError("An error occurred while adding item to cart.", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			ID:       uuid.New(),
			UserID:   id.UserID,
			BookID:   req.BookID,
			Quantity: req.Quantity,
			Price:    book.Price,
		}
		if err := s.store.CartItems().Create(ctx, item); err != nil {
			s.logger.Error("Failed to create cart item", zap.Error(err))
			return internalError("An error occurred while adding item to cart.", err)
		}
	default:
		s.logger.Error("Failed to look up cart item", zap.Error(err))
		return internalError("An error occurred while adding item to cart.", err)
	}

	return nil
}

func (s *cartServiceImpl) UpdateItem(ctx context.Context, id auth.Identity, itemID uuid.UUID, req *models.UpdateCartItemRequest) *ServiceError {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return svcErr
	}

	item, svcErr := s.ownedItem(ctx, id, itemID)
	if svcErr != nil {
		return svcErr
	}

	if _, err := s.store.Books().FindByID(ctx, req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Book not found"}
		}
		s.logger.Error("Failed to fetch book for cart update", zap.Error(err))
		return internalError("An error occurred while updating the cart item.", err)
	}

	item.Quantity = req.Quantity
	if err := s.store.CartItems().Update(ctx, item); err != nil {
		s.logger.Error("Failed to update cart item", zap.Error(err))
		return internalError("An error occurred while updating the cart item.", err)
	}
	return nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, id auth.Identity, itemID uuid.UUID) *ServiceError {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return svcErr
	}

	if _, svcErr := s.ownedItem(ctx, id, itemID); svcErr != nil {
		return svcErr
	}

	if err := s.store.CartItems().Delete(ctx, itemID); err != nil {
		s.logger.Error("Failed to remove cart item", zap.Error(err))
		return internalError("An error occurred while removing item from cart.", err)
	}
	return nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, id auth.Identity) *ServiceError {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return svcErr
	}

	if err := s.store.CartItems().DeleteByUser(ctx, id.UserID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return internalError("An error occurred while clearing the cart.", err)
	}
	return nil
}

// ownedItem loads a cart item and hides other users' items behind the same
// 404 a missing item produces.
func (s *cartServiceImpl) ownedItem(ctx context.Context, id auth.Identity, itemID uuid.UUID) (*models.CartItem, *ServiceError) {
	item, err := s.store.CartItems().FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Cart item not found"}
		}
		s.logger.Error("Failed to fetch cart item", zap.Error(err))
		return nil, internalError("An error occurred while accessing the cart.", err)
	}
	if item.UserID != id.UserID {
		return nil, &ServiceError{StatusCode: 404, Message: "Cart item not found"}
	}
	return item, nil
}
