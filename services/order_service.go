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

// OrderService is the post-checkout order surface: listing and the
// Admin-only status updates. Orders are never deleted here.
type OrderService interface {
	GetAllOrders(ctx context.Context, id auth.Identity) ([]models.Order, *ServiceError)
	GetUserOrders(ctx context.Context, id auth.Identity) ([]models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, id auth.Identity, orderID uuid.UUID, status models.OrderStatus) *ServiceError
}

type orderServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

func NewOrderService(store repository.Store, logger *zap.Logger) OrderService {
	return &orderServiceImpl{store: store, logger: logger}
}

func (s *orderServiceImpl) GetAllOrders(ctx context.Context, id auth.Identity) ([]models.Order, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	orders, err := s.store.Orders().FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, internalError("An error occurred while retrieving orders.", err)
	}
	if len(orders) == 0 {
		return nil, &ServiceError{StatusCode: 404, Message: "No orders found."}
	}
	return orders, nil
}

func (s *orderServiceImpl) GetUserOrders(ctx context.Context, id auth.Identity) ([]models.Order, *ServiceError) {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return nil, svcErr
	}

	orders, err := s.store.Orders().FindByUserID(ctx, id.UserID)
	if err != nil {
		s.logger.Error("Failed to list user orders", zap.Error(err))
		return nil, internalError("An error occurred while retrieving orders.", err)
	}
	if len(orders) == 0 {
		return nil, &ServiceError{StatusCode: 404, Message: "No orders found for this user."}
	}
	return orders, nil
}

// UpdateStatus replaces an order's status. All transitions between valid
// statuses are allowed.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id auth.Identity, orderID uuid.UUID, status models.OrderStatus) *ServiceError {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return svcErr
	}
	if !status.Valid() {
		return &ServiceError{StatusCode: 400, Message: "Invalid status value."}
	}

	if err := s.store.Orders().UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Order not found."}
		}
		s.logger.Error("Failed to update order status", zap.Error(err))
		return internalError("An error occurred while updating the order.", err)
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(status)),
	)
	return nil
}
