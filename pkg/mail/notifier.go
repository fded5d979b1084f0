package mail

import (
	"context"
	"strconv"
	"time"
)

// Notifier turns domain events into messages and pushes them through a Sender.
// Every method reports its outcome as a Delivery instead of failing the caller.
type Notifier struct {
	sender          Sender
	verificationTTL time.Duration
}

func NewNotifier(sender Sender, verificationTTL time.Duration) *Notifier {
	return &Notifier{sender: sender, verificationTTL: verificationTTL}
}

func (n *Notifier) SendVerificationEmail(ctx context.Context, to, link string) Delivery {
	msg, err := VerificationMessage(to, link, humanDuration(n.verificationTTL))
	if err != nil {
		return Delivery{Err: err}
	}
	return Delivery{Err: n.sender.Send(ctx, msg)}
}

func (n *Notifier) SendInquiryReceipt(ctx context.Context, to, fullName, service string) Delivery {
	msg, err := InquiryReceiptMessage(to, fullName, service)
	if err != nil {
		return Delivery{Err: err}
	}
	return Delivery{Err: n.sender.Send(ctx, msg)}
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "15 minutes"
	case d%time.Hour == 0 && d >= time.Hour:
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return strconv.Itoa(h) + " hours"
	default:
		m := int(d / time.Minute)
		if m <= 1 {
			return "1 minute"
		}
		return strconv.Itoa(m) + " minutes"
	}
}
