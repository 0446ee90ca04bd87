package reviews

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/pkg/common"
)

// Service validates and stores product reviews.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *Service) Create(ctx context.Context, rev *domain.Review) (*domain.Review, error) {
	if !validRating(rev.Rating) {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "rating must be between 1 and 5")
	}
	if rev.UserId == 0 || rev.ProductId == 0 {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "user and product are required")
	}
	if rev.ID == 0 {
		rev.ID = common.UUIDint64()
	}
	rev.CreatedAt = time.Now()
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// Update changes rating and comment only; author, product and creation time
// are immutable.
func (s *Service) Update(ctx context.Context, id int64, updated *domain.Review) (*domain.Review, error) {
	if !validRating(updated.Rating) {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "rating must be between 1 and 5")
	}
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rev.Rating = updated.Rating
	rev.Comment = updated.Comment
	if err := s.repo.Save(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Review, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	return s.repo.FindByProduct(ctx, productID)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *Service) AverageRating(ctx context.Context, productID int64) (float64, error) {
	return s.repo.AverageRating(ctx, productID)
}
