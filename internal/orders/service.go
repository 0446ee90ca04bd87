package orders

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/accounts"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the Order Lifecycle Manager. Every stock mutation commits in the
// same transaction as the order write so inventory and orders never
// desynchronize; concurrent orders against one product serialize on the
// product row.
type Service struct {
	db       *gorm.DB
	ledger   Repository
	accounts accounts.Repository
}

func NewService(db *gorm.DB, ledger Repository, accountRepo accounts.Repository) *Service {
	return &Service{db: db, ledger: ledger, accounts: accountRepo}
}

// CreateRequest carries the createOrder parameters.
type CreateRequest struct {
	UserID          int64
	ProductID       int64
	Quantity        int
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// CreateOrder snapshots the unit price, decrements stock and persists the
// PENDING order as one unit of work.
func (s *Service) CreateOrder(ctx context.Context, req CreateRequest) (*domain.Order, error) {
	if req.Quantity <= 0 {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "quantity must be positive")
	}
	if _, err := s.accounts.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.lockProduct(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}
		if err := s.takeStock(tx, product, req.Quantity); err != nil {
			return err
		}

		order = &domain.Order{
			ID:              common.UUIDint64(),
			UserId:          req.UserID,
			ProductId:       product.ID,
			Quantity:        req.Quantity,
			Price:           product.Price,
			TotalAmount:     float64(req.Quantity) * product.Price,
			Status:          domain.OrderPending,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			Notes:           req.Notes,
			OrderDate:       time.Now(),
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserId),
		zap.Int64("product_id", order.ProductId),
		zap.Int("quantity", order.Quantity),
		zap.Float64("total_amount", order.TotalAmount))
	return order, nil
}

// PlaceOrder creates an order for a buyer already resolved by the
// authenticated session; stock rules match CreateOrder.
func (s *Service) PlaceOrder(ctx context.Context, order *domain.Order, user *domain.User) (*domain.Order, error) {
	if user == nil {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "authenticated user is required")
	}
	return s.CreateOrder(ctx, CreateRequest{
		UserID:          user.ID,
		ProductID:       order.ProductId,
		Quantity:        order.Quantity,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
	})
}

// UpdateStatus validates the target against the transition table. Moves to
// CANCELLED route through CancelOrder so the stock restore is never skipped;
// other transitions have no stock side effects.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (*domain.Order, error) {
	status, known := domain.ParseOrderStatus(strings.ToUpper(strings.TrimSpace(rawStatus)))
	if !known {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "unknown order status %q", rawStatus)
	}
	if status == domain.OrderCancelled {
		return s.CancelOrder(ctx, orderID)
	}

	order, err := s.ledger.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, status) {
		zap.L().Warn("rejected order status transition",
			zap.Int64("order_id", orderID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)))
		return nil, errors.Wrapf(domain.ErrInvalidState,
			"transition %s -> %s is not allowed", order.Status, status)
	}

	order.Status = status
	if err := s.ledger.Save(ctx, order); err != nil {
		return nil, err
	}
	zap.L().Info("order status updated",
		zap.Int64("order_id", orderID), zap.String("status", string(status)))
	return order, nil
}

// CancelOrder restores stock and marks the order CANCELLED in one unit of
// work. Only PENDING and CONFIRMED orders may cancel.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o domain.Order
		err := tx.First(&o, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(domain.ErrNotFound, "order %d", orderID)
		}
		if err != nil {
			return err
		}
		if !Cancellable(o.Status) {
			return errors.Wrapf(domain.ErrInvalidState,
				"order in status %s cannot be cancelled", o.Status)
		}

		product, err := s.lockProduct(ctx, tx, o.ProductId)
		if err != nil {
			return err
		}
		if product.StockTracked() {
			if err := tx.Model(&domain.Product{}).
				Where("id = ? AND stock IS NOT NULL", product.ID).
				Update("stock", gorm.Expr("stock + ?", o.Quantity)).Error; err != nil {
				return err
			}
		}

		o.Status = domain.OrderCancelled
		if err := tx.Save(&o).Error; err != nil {
			return err
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order cancelled",
		zap.Int64("order_id", order.ID),
		zap.Int64("product_id", order.ProductId),
		zap.Int("restored_quantity", order.Quantity))
	return order, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.ledger.FindByID(ctx, id)
}

func (s *Service) GetOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.ledger.FindByUser(ctx, userID)
}

func (s *Service) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ledger.FindAll(ctx)
}

func (s *Service) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.ledger.FindByStatus(ctx, status)
}

// lockProduct reads the product inside tx, taking a row lock on dialects
// that support SELECT ... FOR UPDATE.
func (s *Service) lockProduct(ctx context.Context, tx *gorm.DB, productID int64) (*domain.Product, error) {
	q := tx.WithContext(ctx)
	if strings.EqualFold(tx.Name(), "postgres") {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p domain.Product
	err := q.First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(domain.ErrNotFound, "product %d", productID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// takeStock performs the guarded decrement. Untracked items (services) pass
// through without touching inventory.
func (s *Service) takeStock(tx *gorm.DB, product *domain.Product, qty int) error {
	if !product.StockTracked() {
		return nil
	}
	if *product.Stock < qty {
		return errors.Wrapf(domain.ErrInsufficientStock,
			"product %d has %d in stock, requested %d", product.ID, *product.Stock, qty)
	}
	res := tx.Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", product.ID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// another transaction drained the stock between read and write
		return errors.Wrapf(domain.ErrInsufficientStock,
			"product %d stock changed concurrently", product.ID)
	}
	return nil
}
