package mail

import "log"

// OrderLine mirrors one line-item snapshot inside the notification.
type OrderLine struct {
	Name      string
	Qty       int
	UnitPrice float64
}

// OrderEmail carries everything the two outbound messages need.
type OrderEmail struct {
	OrderID       string
	CustomerName  string
	CustomerEmail string
	Items         []OrderLine
	Total         float64
	Address       string
}

// Mailer is the notification sink. Checkout treats it as best-effort: a
// returned error is logged by the caller, never surfaced to the customer.
type Mailer interface {
	SendOrderEmails(m OrderEmail) error
}

// LogMailer is the no-credentials fallback: it only records that a send
// would have happened. Used for local runs and tests.
type LogMailer struct{}

func (LogMailer) SendOrderEmails(m OrderEmail) error {
	log.Printf("[mail] skipped send for order %s to %s (no API key configured)", shortID(m.OrderID), m.CustomerEmail)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
