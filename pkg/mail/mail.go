// Package mail renders and delivers transactional email.
package mail

import (
	"context"
	"errors"
	"strings"
)

// Message is a single outbound email.
type Message struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Validate rejects messages that no provider would accept.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return errors.New("mail: no recipients")
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return errors.New("mail: empty recipient")
		}
	}
	if m.Subject == "" {
		return errors.New("mail: empty subject")
	}
	return nil
}

// Sender hands a message to a delivery channel (provider API, queue, log).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Delivery is the outcome of a best-effort send.
type Delivery struct {
	Err error
}

func (d Delivery) OK() bool { return d.Err == nil }
