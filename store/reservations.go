package store

import (
	"context"
	"fmt"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

func (s *Store) CreateReservation(ctx context.Context, r *models.Reservation) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (s *Store) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	rows := []models.Reservation{}
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return rows, nil
}
