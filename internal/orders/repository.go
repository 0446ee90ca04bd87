package orders

import (
	"context"

	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/domain"
	"gorm.io/gorm"
)

// Repository is the Order Ledger contract.
type Repository interface {
	Save(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Save(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *GormRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(domain.ErrNotFound, "order %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	var rows []domain.Order
	err := r.db.WithContext(ctx).Order("order_date DESC").Find(&rows).Error
	return rows, err
}

func (r *GormRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var rows []domain.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	var rows []domain.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("order_date DESC").
		Find(&rows).Error
	return rows, err
}
