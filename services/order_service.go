package services

import (
	"context"
	"errors"
	"fmt"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/metrics"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/statemachine"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type OrderService struct {
	db          *gorm.DB
	orders      *repository.OrderRepository
	menu        *repository.MenuRepository
	restaurants *repository.RestaurantRepository
	codes       CodeGenerator
	log         logrus.FieldLogger
}

func NewOrderService(db *gorm.DB, codes CodeGenerator, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		db:          db,
		orders:      repository.NewOrderRepository(db),
		menu:        repository.NewMenuRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		codes:       codes,
		log:         log,
	}
}

// ----- DTOs -----

type OrderLineInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

type PlaceOrderInput struct {
	RestaurantID uint             `json:"restaurant_id" binding:"required"`
	OrderType    models.OrderType `json:"order_type" binding:"required"`
	Items        []OrderLineInput `json:"items"`
}

type UpdateStatusInput struct {
	Status models.OrderStatus `json:"status"`
}

// ----- Customer -----

// PlaceOrder validates every line against the menu, prices it at the current
// menu price and persists the order, its items and the first history entry
// atomically. Any invalid line rejects the whole order.
func (s *OrderService) PlaceOrder(ctx context.Context, p *auth.Principal, in PlaceOrderInput) (*models.Order, error) {
	restaurant, err := s.restaurants.FindByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, lookup(err, "The selected restaurant could not be found.")
	}
	if !in.OrderType.Valid() {
		return nil, apperror.Validation("Invalid order type '%s'.", in.OrderType)
	}
	if len(in.Items) == 0 {
		return nil, apperror.Validation("Order must contain at least one item")
	}

	ids := make([]uint, 0, len(in.Items))
	for _, line := range in.Items {
		ids = append(ids, line.MenuItemID)
	}
	menuItems, err := s.menu.FindItems(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var total float64
	lines := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		item, ok := menuItems[line.MenuItemID]
		if !ok || !item.IsAvailable || item.RestaurantID != restaurant.ID {
			return nil, apperror.Validation("Menu item with id %d is invalid or unavailable", line.MenuItemID)
		}
		if line.Quantity < 1 {
			return nil, apperror.Validation("Quantity for menu item %d must be at least 1", line.MenuItemID)
		}
		total += item.Price * float64(line.Quantity)
		lines = append(lines, models.OrderItem{
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			Quantity:     line.Quantity,
			PriceAtOrder: item.Price,
		})
	}

	otp, err := s.codes.OTP()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("generate otp: %w", err))
	}
	qr, err := s.codes.QRPayload()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("generate qr payload: %w", err))
	}

	order := &models.Order{
		UserID:       p.UserID,
		RestaurantID: restaurant.ID,
		TotalAmount:  round2(total),
		Status:       models.StatusPlaced,
		OrderType:    in.OrderType,
		OTP:          otp,
		QRPayload:    qr,
		Items:        lines,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		return orders.AddHistory(ctx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPlaced,
			ChangedBy: p.UserID,
			Note:      "Order placed by customer",
		})
	})
	if err != nil {
		// a QR payload collision lands here too; no retry is attempted
		return nil, apperror.Internal(err)
	}

	metrics.OrderPlaced(string(order.OrderType))
	s.log.WithFields(logrus.Fields{
		"order_id":      order.ID,
		"restaurant_id": order.RestaurantID,
		"user_id":       p.UserID,
		"total":         order.TotalAmount,
	}).Info("order placed")
	return order, nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, p *auth.Principal) ([]models.Order, error) {
	orders, err := s.orders.ListForUser(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return orders, nil
}

// GetForCustomer only finds orders placed by the caller
func (s *OrderService) GetForCustomer(ctx context.Context, p *auth.Principal, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindForUser(ctx, p.UserID, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	return order, nil
}

// Cancel lets the customer withdraw an order the kitchen has not picked up
func (s *OrderService) Cancel(ctx context.Context, p *auth.Principal, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindForUser(ctx, p.UserID, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	if err := s.transition(ctx, order, models.StatusCancelled, statemachine.ActorCustomer, p.UserID, "Order cancelled by customer"); err != nil {
		return nil, err
	}
	return order, nil
}

// ----- Owner -----

// ListActive is the kitchen queue of the owner's restaurant
func (s *OrderService) ListActive(ctx context.Context, restaurant *models.Restaurant) ([]models.Order, error) {
	orders, err := s.orders.ListActiveForRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return orders, nil
}

// UpdateStatus moves an order of the owner's restaurant to one of the owner targets
func (s *OrderService) UpdateStatus(ctx context.Context, p *auth.Principal, restaurant *models.Restaurant,
	orderID uint, in UpdateStatusInput) (*models.Order, error) {
	order, err := s.orders.FindForRestaurant(ctx, restaurant.ID, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	note := fmt.Sprintf("Status set to %s by restaurant", in.Status)
	if err := s.transition(ctx, order, in.Status, statemachine.ActorOwner, p.UserID, note); err != nil {
		return nil, err
	}
	return order, nil
}

// transition applies a status change guarded by the state machine and the
// order's current status, appending the history entry in the same transaction
func (s *OrderService) transition(ctx context.Context, order *models.Order, to models.OrderStatus,
	actor statemachine.Actor, changedBy uint, note string) error {
	if err := statemachine.CanTransition(order.Status, to, actor); err != nil {
		switch {
		case errors.Is(err, statemachine.ErrInvalidTarget):
			return apperror.Validation("Invalid status '%s'.", to)
		case errors.Is(err, statemachine.ErrTerminal):
			return apperror.Conflict("Order #%d is %s and can no longer change to '%s'.", order.ID, order.Status, to)
		}
		return apperror.Internal(err)
	}

	from := order.Status
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		ok, err := orders.UpdateStatus(ctx, order.ID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("Order #%d changed status concurrently; reload and retry.", order.ID)
		}
		return orders.AddHistory(ctx, &models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  changedBy,
			Note:       note,
		})
	})
	if err != nil {
		return passthrough(err)
	}

	order.Status = to
	metrics.OrderStatusChanged(string(to))
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       to,
		"actor":    actor,
	}).Info("order status changed")
	return nil
}

// ----- Admin -----

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return orders, nil
}

// Refund only records the request. No payment provider is integrated.
func (s *OrderService) Refund(ctx context.Context, p *auth.Principal, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"amount":   order.TotalAmount,
		"admin_id": p.UserID,
	}).Info("refund initiated")
	return order, nil
}
