package services

import (
	"casaferro/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts qty of a product in the session cart, capturing the current
// price. Later price changes never affect lines already in the cart.
func (s *CartService) Add(sessionID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(cartID, productID, qty, p.Price)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Remove(cartID, productID)
}

type CartView struct {
	Items []repos.CartItemRow
	Total float64
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Subtotal
	}
	return CartView{Items: items, Total: total}, nil
}
