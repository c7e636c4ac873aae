package store

import (
	"context"
	"fmt"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

func (s *Store) CreateFeedback(ctx context.Context, f *models.Feedback) error {
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	rows := []models.Feedback{}
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return rows, nil
}
