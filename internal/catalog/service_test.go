package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/servimart/servimart/internal/domain"
)

func newTestServiceWithRepo(t *testing.T) *Service {
	repo, _ := newTestRepo(t)
	return NewService(repo, nil)
}

func TestAddValidatesKind(t *testing.T) {
	svc := newTestServiceWithRepo(t)

	_, err := svc.Add(context.Background(), &domain.Product{Name: "x", Price: 1, Kind: "gadget"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("bad kind: err = %v, want ErrInvalidArgument", err)
	}
}

func TestAddRequiresStockForProducts(t *testing.T) {
	svc := newTestServiceWithRepo(t)

	_, err := svc.Add(context.Background(), &domain.Product{Name: "x", Price: 1, Kind: domain.KindProduct})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("missing stock: err = %v, want ErrInvalidArgument", err)
	}

	neg := -1
	_, err = svc.Add(context.Background(), &domain.Product{Name: "x", Price: 1, Kind: domain.KindProduct, Stock: &neg})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("negative stock: err = %v, want ErrInvalidArgument", err)
	}
}

func TestAddForcesNilStockForServices(t *testing.T) {
	svc := newTestServiceWithRepo(t)

	stock := 10
	p, err := svc.Add(context.Background(), &domain.Product{
		Name: "consulting", Price: 100, Kind: domain.KindService, Stock: &stock,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.Stock != nil {
		t.Error("service must not carry stock")
	}
	if p.ID == 0 {
		t.Error("id should be generated")
	}
}

func TestAddRejectsNegativePriceAndEmptyName(t *testing.T) {
	svc := newTestServiceWithRepo(t)

	_, err := svc.Add(context.Background(), &domain.Product{Name: "  ", Price: 1, Kind: domain.KindService})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("blank name: err = %v, want ErrInvalidArgument", err)
	}

	_, err = svc.Add(context.Background(), &domain.Product{Name: "x", Price: -0.01, Kind: domain.KindService})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("negative price: err = %v, want ErrInvalidArgument", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestServiceWithRepo(t)

	stock := 5
	p, err := svc.Add(context.Background(), &domain.Product{
		Name: "widget", Description: "original", Price: 10,
		Kind: domain.KindProduct, Stock: &stock, Category: "tools",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	newPrice := 12.0
	updated, err := svc.Update(context.Background(), p.ID, UpdateRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 12 {
		t.Errorf("price = %v, want 12", updated.Price)
	}
	if updated.Description != "original" || updated.Category != "tools" {
		t.Error("untouched fields must survive a partial update")
	}

	_, err = svc.Update(context.Background(), 424242, UpdateRequest{Price: &newPrice})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing product: err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePriceToZero(t *testing.T) {
	svc := newTestServiceWithRepo(t)

	p, err := svc.Add(context.Background(), &domain.Product{
		Name: "free-tier-consult", Price: 25, Kind: domain.KindService,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	zero := 0.0
	updated, err := svc.Update(context.Background(), p.ID, UpdateRequest{Price: &zero})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 0 {
		t.Errorf("price = %v, want 0", updated.Price)
	}

	neg := -1.0
	if _, err := svc.Update(context.Background(), p.ID, UpdateRequest{Price: &neg}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("negative price: err = %v, want ErrInvalidArgument", err)
	}
}

type memCache struct {
	entries map[string]string
	sets    int
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.entries[key] = value
	m.sets++
	return nil
}

func (m *memCache) Key(op, arg string) string {
	return op + ":" + arg
}

func TestSearchServesFromCache(t *testing.T) {
	repo, _ := newTestRepo(t)
	cache := &memCache{entries: map[string]string{}}
	svc := NewService(repo, cache)

	stock := 3
	if _, err := svc.Add(context.Background(), &domain.Product{
		Name: "Blue Widget", Price: 5, Kind: domain.KindProduct, Stock: &stock,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rows, err := svc.Search(context.Background(), "widget")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 1 || cache.sets != 1 {
		t.Fatalf("rows = %d, cache sets = %d", len(rows), cache.sets)
	}

	// a second matching product lands in the store but not in the cached entry
	if _, err := svc.Add(context.Background(), &domain.Product{
		Name: "Red Widget", Price: 6, Kind: domain.KindProduct, Stock: &stock,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rows, err = svc.Search(context.Background(), "widget")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("cached search returned %d rows, want the cached 1", len(rows))
	}
	if rows[0].Name != "Blue Widget" || rows[0].Stock == nil || *rows[0].Stock != 3 {
		t.Errorf("cached row did not survive the round trip: %+v", rows[0])
	}
	if cache.sets != 1 {
		t.Errorf("cache hit should not rewrite the entry, sets = %d", cache.sets)
	}
}
