package catalog

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/pkg/common"
	"go.uber.org/zap"
)

const cacheTTL = 60 * time.Second

// Service validates and persists catalog items. A nil cache disables the
// read-through path entirely.
type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) validate(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "product name is required")
	}
	if p.Price < 0 {
		return errors.Wrap(domain.ErrInvalidArgument, "price must not be negative")
	}
	switch p.Kind {
	case domain.KindProduct:
		if p.Stock == nil || *p.Stock < 0 {
			return errors.Wrap(domain.ErrInvalidArgument, "stock is required for products and must be >= 0")
		}
	case domain.KindService:
		// services carry no inventory
		p.Stock = nil
	default:
		return errors.Wrapf(domain.ErrInvalidArgument, "kind must be %q or %q", domain.KindProduct, domain.KindService)
	}
	return nil
}

func (s *Service) Add(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	if p.Status == "" {
		p.Status = common.ENABLED
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateRequest carries partial catalog changes. Price and Stock are pointers
// so a caller can set them to zero; nil means leave the stored value alone.
type UpdateRequest struct {
	Name        string
	Description string
	Price       *float64
	Stock       *int
	Category    string
	Image       string
	Status      string
}

// Update applies partial changes; absent fields leave the stored value alone,
// matching the original profile-update semantics.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errors.Wrap(domain.ErrInvalidArgument, "price must not be negative")
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errors.Wrap(domain.ErrInvalidArgument, "stock must be >= 0")
		}
		p.Stock = req.Stock
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.Image != "" {
		p.Image = req.Image
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.Product, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) FilterByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if s.cache != nil {
		key := s.cache.Key("search", strings.ToLower(strings.TrimSpace(query)))
		if raw, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			var rows []domain.Product
			if err := jsoniter.UnmarshalFromString(raw, &rows); err == nil {
				return rows, nil
			}
		} else if err != nil {
			zap.L().Warn("catalog cache get failed", zap.Error(err))
		}
	}
	rows, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, "search", strings.ToLower(strings.TrimSpace(query)), rows)
	return rows, nil
}

// Categories returns each category with its product count.
func (s *Service) Categories(ctx context.Context) ([]CategoryCount, error) {
	if s.cache != nil {
		key := s.cache.Key("categories", "all")
		if raw, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			var rows []CategoryCount
			if err := jsoniter.UnmarshalFromString(raw, &rows); err == nil {
				return rows, nil
			}
		}
	}
	rows, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, "categories", "all", rows)
	return rows, nil
}

func (s *Service) cachePut(ctx context.Context, op, arg string, v interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := jsoniter.MarshalToString(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.Key(op, arg), raw, cacheTTL); err != nil {
		zap.L().Warn("catalog cache set failed", zap.Error(err))
	}
}
