package orders

import (
	"testing"

	"github.com/servimart/servimart/internal/domain"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to domain.OrderStatus
		want     bool
	}{
		{domain.OrderPending, domain.OrderConfirmed, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderShipped, false},
		{domain.OrderPending, domain.OrderDelivered, false},
		{domain.OrderConfirmed, domain.OrderShipped, true},
		{domain.OrderConfirmed, domain.OrderCancelled, true},
		{domain.OrderConfirmed, domain.OrderPending, false},
		{domain.OrderShipped, domain.OrderDelivered, true},
		{domain.OrderShipped, domain.OrderConfirmed, false},
		{domain.OrderShipped, domain.OrderCancelled, false},
		{domain.OrderDelivered, domain.OrderShipped, false},
		{domain.OrderCancelled, domain.OrderPending, false},
		{domain.OrderPending, domain.OrderPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCancellable(t *testing.T) {
	if !Cancellable(domain.OrderPending) || !Cancellable(domain.OrderConfirmed) {
		t.Error("PENDING and CONFIRMED must be cancellable")
	}
	for _, status := range []domain.OrderStatus{domain.OrderShipped, domain.OrderDelivered, domain.OrderCancelled} {
		if Cancellable(status) {
			t.Errorf("%s must not be cancellable", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, ok := domain.ParseOrderStatus("PENDING"); !ok {
		t.Error("PENDING should parse")
	}
	if _, ok := domain.ParseOrderStatus("pending"); ok {
		t.Error("lowercase should not parse, callers normalize first")
	}
	if _, ok := domain.ParseOrderStatus("TELEPORTED"); ok {
		t.Error("unknown status should not parse")
	}
}
