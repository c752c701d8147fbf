package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"casaferro/internal/domain"
	"casaferro/internal/mail"
	"casaferro/internal/repos"
)

var ErrCartEmpty = errors.New("cart is empty")

// StockError reports which line item could not be fulfilled.
type StockError struct{ Product string }

func (e *StockError) Error() string { return fmt.Sprintf("insufficient stock for %s", e.Product) }

// Contact is the customer information captured by the checkout form.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
}

// CheckoutService is the order lifecycle coordinator: the only component
// that spans the order store, the stock ledger and the mail sink. The step
// order is fixed: create order, decrement stock per item, notify.
type CheckoutService struct {
	Carts  *repos.CartRepo
	Stock  *repos.StockRepo
	Orders *repos.OrderRepo
	Mailer mail.Mailer
}

func NewCheckoutService(carts *repos.CartRepo, stock *repos.StockRepo, orders *repos.OrderRepo, mailer mail.Mailer) *CheckoutService {
	return &CheckoutService{Carts: carts, Stock: stock, Orders: orders, Mailer: mailer}
}

// Place runs one checkout attempt.
//
// Failure semantics: anything before order creation aborts cleanly with no
// state written. A stock failure stops the decrement loop at the failing
// item and leaves the already-created order in pending; it is deliberately
// not rolled back (stock correctness is prioritized over order/stock
// atomicity, and an orphaned pending order can be handled manually).
// Notification failures are logged and never fail the checkout.
func (s *CheckoutService) Place(sessionID string, contact Contact) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, err
	}

	lines, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	// Snapshot items and compute the total from the prices captured in the
	// cart. The total is fixed here and never recomputed.
	items := make([]domain.OrderItem, 0, len(lines))
	total := 0.0
	for _, it := range lines {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.PriceAtAdd,
			Qty:       it.Qty,
		})
		total += it.PriceAtAdd * float64(it.Qty)
	}

	order, err := s.Orders.Create(repos.OrderDraft{
		ID:            uuid.NewString(),
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		Phone:         contact.Phone,
		Address:       contact.Address,
		City:          contact.City,
		Total:         total,
		Items:         items,
	})
	if err != nil {
		return domain.Order{}, err
	}

	// Decrement stock per item, in cart order, stopping at the first
	// failure so attribution stays deterministic.
	for _, it := range items {
		ok, err := s.Stock.Decrement(it.ProductID, it.Qty)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, &StockError{Product: it.Name}
		}
	}

	if err := s.notify(order, items); err != nil {
		log.Printf("[mail] order %s notification failed: %v", order.ID, err)
	}

	_ = s.Carts.Clear(cartID)
	return order, nil
}

func (s *CheckoutService) notify(o domain.Order, items []domain.OrderItem) error {
	if s.Mailer == nil {
		return nil
	}
	lines := make([]mail.OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, mail.OrderLine{Name: it.Name, Qty: it.Qty, UnitPrice: it.UnitPrice})
	}
	return s.Mailer.SendOrderEmails(mail.OrderEmail{
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items:         lines,
		Total:         o.Total,
		Address:       o.Address + ", " + o.City,
	})
}
