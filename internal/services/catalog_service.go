package services

import (
	"casaferro/internal/domain"
	"casaferro/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) Categories() ([]string, error) {
	return s.Prods.Categories()
}

func (s *CatalogService) List(category string, maxPrice float64, q string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(category, maxPrice, q, pageSize, offset)
}

func (s *CatalogService) GetBySlug(slug string) (domain.Product, error) {
	return s.Prods.GetBySlug(slug)
}
