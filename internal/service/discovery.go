package service

import (
	"github.com/ServEase-Innovations/payments/internal/models"
	"github.com/ServEase-Innovations/payments/internal/repository"
	"github.com/ServEase-Innovations/payments/pkg/location"
)

// DiscoveryService finds active providers within a radius of a customer
// location. Best effort only; it never participates in a transaction.
type DiscoveryService struct {
	providers *repository.ProviderRepository
	radiusKm  float64
}

func NewDiscoveryService(providers *repository.ProviderRepository, radiusKm float64) *DiscoveryService {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	return &DiscoveryService{providers: providers, radiusKm: radiusKm}
}

func (s *DiscoveryService) NearbyProviders(lat, lng float64) ([]models.ServiceProvider, error) {
	candidates, err := s.providers.ListActiveWithLocation()
	if err != nil {
		return nil, err
	}
	var nearby []models.ServiceProvider
	for _, p := range candidates {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		if location.HaversineKm(lat, lng, *p.Latitude, *p.Longitude) <= s.radiusKm {
			nearby = append(nearby, p)
		}
	}
	return nearby, nil
}
