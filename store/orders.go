package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

func (s *Store) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

// PlaceOrder inserts order and one order_items row per requested line whose
// menu id exists, priced from the menu rather than the request. Unknown menu
// ids are skipped. Everything runs in one transaction and the lines that
// were stored are returned with their menu names.
func (s *Store) PlaceOrder(ctx context.Context, order *models.Order, lines []models.OrderItemRequest) ([]models.OrderLine, error) {
	placed := []models.OrderLine{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, line := range lines {
			var menu models.MenuItem
			res := tx.Where("id = ?", line.ID).Limit(1).Find(&menu)
			if res.Error != nil {
				return fmt.Errorf("failed to look up menu item %d: %w", line.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				s.log.Debug().Uint("menu_id", line.ID).Uint("order_id", order.ID).Msg("Skipping unknown menu item")
				continue
			}

			item := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   menu.ID,
				Quantity: line.Qty,
				Price:    menu.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to insert order item %d: %w", line.ID, err)
			}

			name := menu.Name
			placed = append(placed, models.OrderLine{
				ID:       item.ID,
				OrderID:  item.OrderID,
				MenuID:   item.MenuID,
				Quantity: item.Quantity,
				Price:    item.Price,
				Name:     &name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// ListOrders returns every order, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// OrderLines returns the items of one order with the current menu name, which
// is null for menu rows that no longer exist.
func (s *Store) OrderLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	lines := []models.OrderLine{}
	err := s.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.menu_id, order_items.quantity, order_items.price, menu.name AS name").
		Joins("LEFT JOIN menu ON menu.id = order_items.menu_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items for order %d: %w", orderID, err)
	}
	return lines, nil
}
