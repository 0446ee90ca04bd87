package reviews

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/servimart/servimart/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "reviews_test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewGormRepository(db))
}

func addReview(t *testing.T, svc *Service, userID, productID int64, rating int, comment string) *domain.Review {
	t.Helper()
	rev, err := svc.Create(context.Background(), &domain.Review{
		UserId:    userID,
		ProductId: productID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		t.Fatalf("Create review: %v", err)
	}
	return rev
}

func TestCreateValidatesRatingBounds(t *testing.T) {
	svc := newTestService(t)
	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), &domain.Review{
			UserId: 1, ProductId: 2, Rating: rating,
		})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("rating %d: err = %v, want ErrInvalidArgument", rating, err)
		}
	}
	addReview(t, svc, 1, 2, 1, "min")
	addReview(t, svc, 1, 2, 5, "max")
}

func TestCreateRequiresUserAndProduct(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), &domain.Review{Rating: 4})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestUpdateKeepsAuthorAndProduct(t *testing.T) {
	svc := newTestService(t)
	rev := addReview(t, svc, 1, 2, 3, "ok")

	updated, err := svc.Update(context.Background(), rev.ID, &domain.Review{
		Rating:    5,
		Comment:   "much better after the update",
		UserId:    99,
		ProductId: 98,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 5 || updated.Comment != "much better after the update" {
		t.Error("rating and comment not applied")
	}
	if updated.UserId != 1 || updated.ProductId != 2 {
		t.Error("author and product must be immutable")
	}
}

func TestAverageRating(t *testing.T) {
	svc := newTestService(t)

	avg, err := svc.AverageRating(context.Background(), 2)
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if avg != 0 {
		t.Errorf("average with no reviews = %v, want 0", avg)
	}

	addReview(t, svc, 1, 2, 5, "")
	addReview(t, svc, 3, 2, 4, "")
	addReview(t, svc, 4, 9, 1, "other product")

	avg, err = svc.AverageRating(context.Background(), 2)
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if math.Abs(avg-4.5) > 1e-9 {
		t.Errorf("average = %v, want 4.5", avg)
	}
}

func TestDeleteMissingReview(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Delete(context.Background(), 12345); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
