package services

import (
	"context"
	"fmt"
	"time"

	"bookstore-api/auth"
	"bookstore-api/kafka"
	"bookstore-api/models"
	"bookstore-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService converts a user's cart into an order batch and decrements
// stock, all inside one database transaction.
type CheckoutService interface {
	Checkout(ctx context.Context, id auth.Identity, req *models.CheckoutRequest) (*models.CheckoutResponse, *ServiceError)
}

type checkoutServiceImpl struct {
	store    repository.Store
	producer kafka.ProducerAPI
	cache    BookListCache
	logger   *zap.Logger
}

// NewCheckoutService creates a CheckoutService. producer and cache may be
// nil; both are post-commit conveniences, not part of the transaction.
func NewCheckoutService(store repository.Store, producer kafka.ProducerAPI, cache BookListCache, logger *zap.Logger) CheckoutService {
	return &checkoutServiceImpl{store: store, producer: producer, cache: cache, logger: logger}
}

// errStockConflict marks a decrement that lost a race with a concurrent
// checkout. It aborts the transaction; the caller gets a 409 and must
// resubmit, nothing is retried automatically.
type errStockConflict struct{ title string }

func (e *errStockConflict) Error() string {
	return fmt.Sprintf("stock for %q was consumed concurrently", e.title)
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, id auth.Identity, req *models.CheckoutRequest) (*models.CheckoutResponse, *ServiceError) {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return nil, svcErr
	}

	batchID := uuid.New()
	var total float64
	var lines []models.CartLine
	var svcErr *ServiceError

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		lines, err = tx.CartItems().FindLinesByUser(ctx, id.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			svcErr = &ServiceError{StatusCode: 400, Message: "Your cart is empty"}
			return fmt.Errorf("empty cart")
		}

		// Totals use the snapshotted cart price, not the live catalog
		// price: the buyer pays what they saw when they added the line.
		for _, line := range lines {
			total += float64(line.Quantity) * line.Price
		}

		// Validate every line before touching any stock so a failure
		// writes nothing.
		for _, line := range lines {
			if line.Quantity > line.Stock {
				svcErr = &ServiceError{
					StatusCode: 400,
					Message:    fmt.Sprintf("Not enough stock for book: %s", line.Title),
				}
				return fmt.Errorf("insufficient stock for %s", line.Title)
			}
		}

		for _, line := range lines {
			ok, err := tx.Books().DecrementStock(ctx, line.BookID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &errStockConflict{title: line.Title}
			}

			order := &models.Order{
				ID:              uuid.New(),
				BatchID:         batchID,
				UserID:          id.UserID,
				BookID:          line.BookID,
				BookTitle:       line.Title,
				BookPrice:       line.Price,
				Quantity:        line.Quantity,
				TotalAmount:     total,
				FullName:        req.FullName,
				Email:           req.Email,
				PhoneNumber:     req.PhoneNumber,
				ShippingAddress: req.ShippingAddress,
				City:            req.City,
				PostalCode:      req.PostalCode,
				Status:          models.OrderStatusPending,
			}
			if err := tx.Orders().Create(ctx, order); err != nil {
				return err
			}
		}

		return tx.CartItems().DeleteByUser(ctx, id.UserID)
	})
	if err != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		if conflict, ok := err.(*errStockConflict); ok {
			s.logger.Warn("Checkout lost a stock race",
				zap.String("user_id", id.UserID.String()),
				zap.Error(conflict),
			)
			return nil, &ServiceError{StatusCode: 409, Message: "Checkout failed"}
		}
		s.logger.Error("Checkout transaction failed", zap.Error(err))
		return nil, internalError("An error occurred while processing your order.", err)
	}

	s.logger.Info("Checkout committed",
		zap.String("user_id", id.UserID.String()),
		zap.String("batch_id", batchID.String()),
		zap.Int("lines", len(lines)),
		zap.Float64("total", total),
	)

	s.publishOrderPlaced(id.UserID, batchID, lines, total)
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	return &models.CheckoutResponse{
		Success:    true,
		Message:    "Checkout successful",
		BatchID:    batchID,
		TotalPrice: total,
	}, nil
}

func (s *checkoutServiceImpl) publishOrderPlaced(userID, batchID uuid.UUID, lines []models.CartLine, total float64) {
	if s.producer == nil {
		return
	}

	items := make([]models.OrderPlacedItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderPlacedItem{
			BookID:   line.BookID,
			Title:    line.Title,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}
	event := models.OrderPlacedEvent{
		BatchID:    batchID,
		UserID:     userID,
		Items:      items,
		TotalPrice: total,
		Timestamp:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.producer.PublishOrderPlaced(ctx, event); err != nil {
		// best-effort; the order batch is already committed
		s.logger.Warn("Failed to publish order.placed event", zap.Error(err))
	}
}
