package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/pkg/common"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) (*GormRepository, *gorm.DB) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "catalog_test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormRepository(db), db
}

func intp(v int) *int { return &v }

func createProduct(t *testing.T, repo *GormRepository, name, category string, stock *int) *domain.Product {
	t.Helper()
	kind := domain.KindProduct
	if stock == nil {
		kind = domain.KindService
	}
	p := &domain.Product{
		ID:       common.UUIDint64(),
		Name:     name,
		Price:    10,
		Stock:    stock,
		Kind:     kind,
		Category: category,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.GetByID(context.Background(), 424242)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecrementStockGuard(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := createProduct(t, repo, "widget", "tools", intp(5))

	done, err := repo.DecrementStock(context.Background(), p.ID, 3)
	if err != nil || !done {
		t.Fatalf("decrement 3 of 5: done=%v err=%v", done, err)
	}

	// more than remaining must refuse without going negative
	done, err = repo.DecrementStock(context.Background(), p.ID, 3)
	if err != nil {
		t.Fatalf("decrement err: %v", err)
	}
	if done {
		t.Error("decrement beyond stock should not report success")
	}

	got, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *got.Stock != 2 {
		t.Errorf("stock = %d, want 2", *got.Stock)
	}
}

func TestDecrementStockIgnoresServices(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := createProduct(t, repo, "consulting", "services", nil)

	done, err := repo.DecrementStock(context.Background(), p.ID, 1)
	if err != nil {
		t.Fatalf("decrement err: %v", err)
	}
	if done {
		t.Error("untracked item must not report a stock decrement")
	}
}

func TestIncrementStock(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := createProduct(t, repo, "widget", "tools", intp(2))

	if err := repo.IncrementStock(context.Background(), p.ID, 4); err != nil {
		t.Fatalf("increment: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), p.ID)
	if *got.Stock != 6 {
		t.Errorf("stock = %d, want 6", *got.Stock)
	}
}

func TestCategoryCounts(t *testing.T) {
	repo, _ := newTestRepo(t)
	createProduct(t, repo, "a", "tools", intp(1))
	createProduct(t, repo, "b", "tools", intp(1))
	createProduct(t, repo, "c", "garden", intp(1))

	rows, err := repo.CategoryCounts(context.Background())
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	if counts["tools"] != 2 || counts["garden"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)
	createProduct(t, repo, "Cricket Bat", "sports", intp(1))
	createProduct(t, repo, "Football", "sports", intp(1))

	rows, err := repo.Search(context.Background(), "cricket")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Cricket Bat" {
		t.Errorf("search result = %v", rows)
	}
}

func TestListPaginationAndSortWhitelist(t *testing.T) {
	repo, _ := newTestRepo(t)
	for _, name := range []string{"a", "b", "c"} {
		createProduct(t, repo, name, "tools", intp(1))
	}

	rows, total, err := repo.List(context.Background(), ListFilter{
		SortCol: "name", SortDesc: true, Page: 1, PageSize: 2,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(rows) != 2 {
		t.Fatalf("total=%d len=%d, want 3 and 2", total, len(rows))
	}
	if rows[0].Name != "c" {
		t.Errorf("first row = %s, want c", rows[0].Name)
	}

	// unknown sort column falls back to id instead of erroring
	if _, _, err := repo.List(context.Background(), ListFilter{SortCol: "drop table"}); err != nil {
		t.Errorf("List with bad sort column: %v", err)
	}
}
