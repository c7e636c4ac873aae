package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

// RecordPayment stores p and marks the referenced order paid and the
// referenced reservation confirmed, in one transaction. Missing references
// are not checked.
func (s *Store) RecordPayment(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		if p.OrderID != nil {
			err := tx.Model(&models.Order{}).
				Where("id = ?", *p.OrderID).
				Update("status", models.OrderPaid).Error
			if err != nil {
				return fmt.Errorf("failed to mark order %d paid: %w", *p.OrderID, err)
			}
		}
		if p.ReservationID != nil {
			err := tx.Model(&models.Reservation{}).
				Where("id = ?", *p.ReservationID).
				Update("status", models.ReservationConfirmed).Error
			if err != nil {
				return fmt.Errorf("failed to confirm reservation %d: %w", *p.ReservationID, err)
			}
		}
		return nil
	})
}

// LatestOrderPayment returns the most recent payment for an order, or nil.
func (s *Store) LatestOrderPayment(ctx context.Context, orderID uint) (*models.Payment, error) {
	return s.latestPayment(ctx, "order_id", orderID)
}

// LatestReservationPayment returns the most recent payment for a
// reservation, or nil.
func (s *Store) LatestReservationPayment(ctx context.Context, reservationID uint) (*models.Payment, error) {
	return s.latestPayment(ctx, "reservation_id", reservationID)
}

func (s *Store) latestPayment(ctx context.Context, column string, id uint) (*models.Payment, error) {
	var p models.Payment
	res := s.db.WithContext(ctx).
		Where(column+" = ?", id).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&p)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to look up payment for %s %d: %w", column, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &p, nil
}
