package services

import (
	"casaferro/internal/domain"
	"casaferro/internal/repos"
)

type FavoriteService struct {
	Favs *repos.FavoriteRepo
}

func NewFavoriteService(favs *repos.FavoriteRepo) *FavoriteService {
	return &FavoriteService{Favs: favs}
}

func (s *FavoriteService) Save(sessionID, productID string) error {
	return s.Favs.Save(sessionID, productID)
}

func (s *FavoriteService) Unsave(sessionID, productID string) error {
	return s.Favs.Unsave(sessionID, productID)
}

func (s *FavoriteService) List(sessionID string) ([]domain.Product, error) {
	return s.Favs.List(sessionID)
}
