package services

import (
	"database/sql"

	"casaferro/internal/domain"
	"casaferro/internal/repos"
)

type StockService struct {
	Stock *repos.StockRepo
}

func NewStockService(stock *repos.StockRepo) *StockService {
	return &StockService{Stock: stock}
}

// CheckAvailability maps the raw count to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *StockService) CheckAvailability(productID string) (domain.Availability, error) {
	qty, err := s.Stock.Qty(productID)
	if err != nil {
		// Unknown product reads as out of stock; no existence leak.
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}
