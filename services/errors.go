package services

import (
	"errors"
	"fmt"

	"fashionstore/models"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrStatusMismatch is returned by an OrderStore when a conditional status
	// update matched the order id but not the expected current status.
	ErrStatusMismatch = errors.New("order status does not allow this transition")
)

// TransitionError reports a status change refused by the lifecycle guards.
type TransitionError struct {
	Action  string
	Current models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s order: current status is %s", e.Action, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrStatusMismatch
}
