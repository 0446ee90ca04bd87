package orders

import "github.com/servimart/servimart/internal/domain"

// transitions is the closed forward-only table. DELIVERED and CANCELLED are
// terminal; cancellation is reachable only from PENDING and CONFIRMED.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:   {domain.OrderConfirmed, domain.OrderCancelled},
	domain.OrderConfirmed: {domain.OrderShipped, domain.OrderCancelled},
	domain.OrderShipped:   {domain.OrderDelivered},
	domain.OrderDelivered: {},
	domain.OrderCancelled: {},
}

// CanTransition reports whether from -> to is a defined transition.
func CanTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in the given status may be cancelled.
func Cancellable(status domain.OrderStatus) bool {
	return status == domain.OrderPending || status == domain.OrderConfirmed
}
