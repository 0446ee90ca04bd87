package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/pkg/common"
	"go.uber.org/zap"
)

// Service is the Account Directory: registration, credential verification
// and profile maintenance. Passwords only ever leave here hashed.
type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) Register(ctx context.Context, u *domain.User) (*domain.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" || u.Password == "" {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "username and password are required")
	}
	taken, err := s.repo.ExistsUsername(ctx, u.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "username %s already registered", u.Username)
	}

	hashed, err := s.hasher.Hash(u.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hashed

	if u.ID == 0 {
		u.ID = common.UUIDint64()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	u.Active = true
	u.Available = true

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	zap.L().Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("role", u.Role))
	return u, nil
}

// Authenticate verifies credentials and rejects deactivated accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(password, u.Password) {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "invalid credentials")
	}
	if !u.Active {
		return nil, errors.Wrap(domain.ErrInvalidState, "account is deactivated")
	}

	u.LastLogin = time.Now()
	if err := s.repo.Save(ctx, u); err != nil {
		zap.L().Warn("failed to record last login", zap.Int64("user_id", u.ID), zap.Error(err))
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpdateProfile applies the allowed subset of fields. Username, password,
// role and the active flag are excluded from this path.
func (s *Service) UpdateProfile(ctx context.Context, id int64, updated *domain.User) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated.FullName != "" {
		u.FullName = updated.FullName
	}
	if updated.Email != "" {
		u.Email = updated.Email
	}
	if updated.Phone != "" {
		u.Phone = updated.Phone
	}
	if updated.Address != "" {
		u.Address = updated.Address
	}
	if updated.ServiceType != "" {
		u.ServiceType = updated.ServiceType
	}
	u.Available = updated.Available

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdatePassword(ctx context.Context, id int64, current, next string) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(current, u.Password) {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "current password is incorrect")
	}
	return s.setPassword(ctx, u, next)
}

// AdminResetPassword sets a new password without checking the current one.
func (s *Service) AdminResetPassword(ctx context.Context, id int64, next string) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setPassword(ctx, u, next)
}

func (s *Service) setPassword(ctx context.Context, u *domain.User, next string) (*domain.User, error) {
	if next == "" {
		return nil, errors.Wrap(domain.ErrInvalidArgument, "new password is required")
	}
	hashed, err := s.hasher.Hash(next)
	if err != nil {
		return nil, err
	}
	u.Password = hashed
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Active = active
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	zap.L().Info("user active status changed",
		zap.Int64("user_id", id), zap.Bool("active", active))
	return u, nil
}

func (s *Service) SetAvailable(ctx context.Context, id int64, available bool) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Available = available
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
