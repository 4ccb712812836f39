// Package mailer sends transactional email. Delivery is a single synchronous
// attempt; callers decide what a failure means for them.
package mailer

import (
	"context"
	"errors"
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var ErrNoRecipient = errors.New("mailer: message has no recipient")

type Sender interface {
	Send(ctx context.Context, msg Message) error
}
