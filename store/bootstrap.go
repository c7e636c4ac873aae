package store

import (
	"context"
	"fmt"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

var seedMenu = []models.MenuItem{
	{Name: "Margherita Pizza", Description: "Fresh tomato & mozzarella", Price: 250},
	{Name: "Paneer Butter Masala", Description: "Creamy & aromatic", Price: 220},
	{Name: "Veg Biryani", Description: "Fragrant basmati rice", Price: 180},
	{Name: "Garlic Bread", Description: "Crispy & buttery", Price: 80},
	{Name: "Chocolate Brownie", Description: "Rich & fudgy", Price: 120},
}

// Bootstrap creates any missing tables and seeds the menu when it is empty.
// It is safe to run on every start.
func (s *Store) Bootstrap(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if count > 0 {
		s.log.Info().Int64("items", count).Msg("Menu already seeded")
		return nil
	}

	items := make([]models.MenuItem, len(seedMenu))
	copy(items, seedMenu)
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}
	s.log.Info().Int("items", len(items)).Msg("Seeded menu with sample items")
	return nil
}
