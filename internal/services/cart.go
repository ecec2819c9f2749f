package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
)

//go:generate mockgen -source=cart.go -destination=mocks.go -package=services

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCartItemForbidden = errors.New("cart item belongs to another user")
	ErrCartEmpty         = errors.New("cart is empty")
)

// CartStore defines the cart operations the service builds on.
type CartStore interface {
	GetOne(ctx context.Context, itemID string) *models.CartItem
	GetAllForUser(ctx context.Context, userID string) []models.CartItem
	AddItem(ctx context.Context, userID, productID, name string, price float64, image string, count int) (*models.CartItem, error)
	UpdateCount(ctx context.Context, itemID string, count int) (bool, error)
	RemoveItem(ctx context.Context, itemID string) (bool, error)
	ClearForUser(ctx context.Context, userID string) error
	TotalForUser(ctx context.Context, userID string) float64
	CountForUser(ctx context.Context, userID string) int
}

// OrderNotifier delivers an order message to the shop owner and returns
// the upstream message id.
type OrderNotifier interface {
	Send(ctx context.Context, text string) (int64, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CheckoutRequest carries the validated checkout form fields.
type CheckoutRequest struct {
	Phone        string
	Name         string
	Address      string
	PostCard     bool
	PostCardText string
}

// CartSummary is a user's cart with its derived aggregates.
type CartSummary struct {
	Items []models.CartItem
	Total float64
	Count int
}

// CartService handles cart operations and checkout.
type CartService struct {
	cart        CartStore
	notifier    OrderNotifier
	kafkaWriter KafkaWriter
}

// NewCartService creates a new CartService. kafkaWriter may be nil when no
// broker is configured; order events are then skipped.
func NewCartService(cart CartStore, notifier OrderNotifier, kafkaWriter KafkaWriter) *CartService {
	return &CartService{
		cart:        cart,
		notifier:    notifier,
		kafkaWriter: kafkaWriter,
	}
}

// Summary returns the user's items with total and count.
func (s *CartService) Summary(ctx context.Context, userID string) CartSummary {
	return CartSummary{
		Items: s.cart.GetAllForUser(ctx, userID),
		Total: s.cart.TotalForUser(ctx, userID),
		Count: s.cart.CountForUser(ctx, userID),
	}
}

// Add puts count units of a product into the user's cart.
func (s *CartService) Add(ctx context.Context, userID, productID, name string, price float64, image string, count int) (*models.CartItem, error) {
	return s.cart.AddItem(ctx, userID, productID, name, price, image, count)
}

// UpdateCount sets the count on one of the user's items. Zero removes the
// item. Items that are missing or owned by someone else are forbidden.
func (s *CartService) UpdateCount(ctx context.Context, userID, itemID string, count int) error {
	item := s.cart.GetOne(ctx, itemID)
	if item == nil || item.UserID != userID {
		return ErrCartItemForbidden
	}

	ok, err := s.cart.UpdateCount(ctx, itemID, count)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

// Remove deletes one of the user's items.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	item := s.cart.GetOne(ctx, itemID)
	if item == nil || item.UserID != userID {
		return ErrCartItemForbidden
	}

	ok, err := s.cart.RemoveItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear empties the user's cart. Idempotent.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.cart.ClearForUser(ctx, userID)
}

// Totals returns the cart aggregates without the items.
func (s *CartService) Totals(ctx context.Context, userID string) (total float64, count int) {
	return s.cart.TotalForUser(ctx, userID), s.cart.CountForUser(ctx, userID)
}

// Checkout sends the order to the shop owner, publishes an order event and
// clears the cart. The Telegram send is synchronous with no retry; a
// failure aborts the checkout and leaves the cart untouched.
func (s *CartService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (orderID int64, err error) {
	items := s.cart.GetAllForUser(ctx, userID)
	if len(items) == 0 {
		return 0, ErrCartEmpty
	}
	total := s.cart.TotalForUser(ctx, userID)

	text := formatOrder(userID, req, items, total)

	orderID, err = s.notifier.Send(ctx, text)
	if err != nil {
		logger.Log.Errorw("failed to send order notification", "user_id", userID, "error", err)
		return 0, err
	}

	s.publishOrderEvent(ctx, models.OrderEvent{
		EventID:   uuid.NewString(),
		UserID:    userID,
		Phone:     req.Phone,
		Name:      req.Name,
		Address:   req.Address,
		Items:     items,
		Total:     total,
		Timestamp: time.Now().Unix(),
	})

	if err := s.cart.ClearForUser(ctx, userID); err != nil {
		return 0, err
	}

	logger.Log.Infow("order placed", "user_id", userID, "order_id", orderID, "total", total)
	return orderID, nil
}

// publishOrderEvent publishes an order event to Kafka. Fire-and-forget: a
// missing writer or a publish failure never fails the checkout.
func (s *CartService) publishOrderEvent(ctx context.Context, event models.OrderEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping order event", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal order event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish order event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("order event published", "event_id", event.EventID, "total", event.Total)
	}
}

func formatOrder(userID string, req CheckoutRequest, items []models.CartItem, total float64) string {
	var b strings.Builder

	b.WriteString("New order!\n\n")
	b.WriteString("Customer:\n")
	fmt.Fprintf(&b, "Id: %s\n", userID)
	if req.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", req.Name)
	} else {
		b.WriteString("Name: not provided\n")
	}
	fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", req.Address)

	b.WriteString("Items:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s x%d at %.2f = %.2f\n",
			item.Name, item.Count, item.Price, item.Price*float64(item.Count))
	}

	if req.PostCard {
		fmt.Fprintf(&b, "\nPostcard: yes\nPostcard text:\n%s\n", req.PostCardText)
	} else {
		b.WriteString("\nPostcard: no\n")
	}

	fmt.Fprintf(&b, "\nTotal: %.2f", total)
	return b.String()
}
