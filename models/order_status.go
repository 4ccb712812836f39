package models

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

var validNext = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := validNext[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range validNext[s] {
		if n == next {
			return true
		}
	}
	return false
}

// SourcesOf lists every status from which next is reachable in one step.
func SourcesOf(next OrderStatus) []OrderStatus {
	var from []OrderStatus
	for _, s := range []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}
