package reviews

import (
	"context"

	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/domain"
	"gorm.io/gorm"
)

// Repository handles review storage.
type Repository interface {
	Create(ctx context.Context, r *domain.Review) error
	Save(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]domain.Review, error)
	FindByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	AverageRating(ctx context.Context, productID int64) (float64, error)
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *GormRepository) Save(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.WithContext(ctx).First(&rev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(domain.ErrNotFound, "review %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error
}

func (r *GormRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *GormRepository) FindByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	var rows []domain.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *GormRepository) AverageRating(ctx context.Context, productID int64) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
