package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/domain"
	"gorm.io/gorm"
)

// Repository is the Catalog Store contract. Atomicity between a stock check
// and a stock mutation is the caller's responsibility; DecrementStock is a
// single guarded statement so callers can rely on its affected-row count.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Save(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.Product, int64, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)

	// DecrementStock subtracts qty only when enough stock remains and
	// reports whether a row was updated.
	DecrementStock(ctx context.Context, id int64, qty int) (bool, error)
	IncrementStock(ctx context.Context, id int64, qty int) error
}

// ListFilter carries pagination and filtering for product listings.
type ListFilter struct {
	Query    string
	Name     string
	Category string
	SortCol  string
	SortDesc bool
	Page     int
	PageSize int
}

// CategoryCount is one row of the category summary.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(domain.ErrNotFound, "product %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

// allowed sort columns, whitelisted to avoid SQL injection
var allowedSortCols = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"category":   "category",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *GormRepository) List(ctx context.Context, filter ListFilter) ([]domain.Product, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if filter.Name != "" {
		db = db.Where("name = ?", filter.Name)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortCol, okc := allowedSortCols[filter.SortCol]
	if !okc {
		sortCol = "id"
	}
	order := sortCol + " ASC"
	if filter.SortDesc {
		order = sortCol + " DESC"
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	var rows []domain.Product
	err := db.Order(order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	return rows, total, err
}

func (r *GormRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	db := r.db.WithContext(ctx)
	q := strings.TrimSpace(query)
	var rows []domain.Product
	var err error
	if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
		err = db.Where("name ILIKE ?", "%"+q+"%").Order("id DESC").Find(&rows).Error
	} else {
		err = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%").Order("id DESC").Find(&rows).Error
	}
	return rows, err
}

func (r *GormRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *GormRepository) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("category, COUNT(*) as count").
		Where("category <> ''").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormRepository) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock IS NOT NULL AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) IncrementStock(ctx context.Context, id int64, qty int) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock IS NOT NULL", id).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}
