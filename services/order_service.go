package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fashionstore/mailer"
	"fashionstore/metrics"
	"fashionstore/models"
	"fashionstore/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// totalTolerance is the largest accepted gap between the caller's total and
// the total recomputed from line items.
var totalTolerance = decimal.New(1, -2)

type CreateOrderInput struct {
	CustomerName    string           `json:"customerName" validate:"required"`
	CustomerEmail   string           `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string           `json:"customerPhone" validate:"required"`
	ShippingAddress *AddressInput    `json:"shippingAddress" validate:"required"`
	OrderItems      []OrderItemInput `json:"orderItems" validate:"required,min=1,dive"`
	TotalPrice      *float64         `json:"totalPrice" validate:"required,gte=0"`
}

type AddressInput struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country"`
}

type OrderItemInput struct {
	Product  string   `json:"product" validate:"required"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity int      `json:"quantity" validate:"min=1"`
	Image    string   `json:"image"`
	Size     string   `json:"size"`
	Color    string   `json:"color"`
}

func (in *CreateOrderInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	if a := in.ShippingAddress; a != nil {
		a.Street = strings.TrimSpace(a.Street)
		a.City = strings.TrimSpace(a.City)
		a.PostalCode = strings.TrimSpace(a.PostalCode)
		a.Country = strings.TrimSpace(a.Country)
	}
	for i := range in.OrderItems {
		in.OrderItems[i].Product = strings.TrimSpace(in.OrderItems[i].Product)
	}
}

type OrderService struct {
	store   OrderStore
	mailer  mailer.Sender
	events  EventPublisher
	metrics *metrics.OrderMetrics
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*OrderService)

func WithEventPublisher(p EventPublisher) Option {
	return func(s *OrderService) { s.events = p }
}

func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *OrderService) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

func NewOrderService(store OrderStore, sender mailer.Sender, log *zap.Logger, opts ...Option) *OrderService {
	s := &OrderService{
		store:  store,
		mailer: sender,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the payload, recomputes the total from the line items and
// persists a Pending order. Nothing is stored when validation fails.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in.normalize()

	if err := validation.Struct(in); err != nil {
		s.metrics.OrderRejected()
		return nil, err
	}

	verr := &validation.Error{}
	items := make([]models.OrderItem, 0, len(in.OrderItems))
	total := decimal.Zero
	for i, it := range in.OrderItems {
		productID, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil || productID.IsZero() {
			verr.Add(fmt.Sprintf("orderItems[%d].product", i), "must be a valid id")
			continue
		}
		// Stored item prices must sum exactly to the stored total.
		price := decimal.NewFromFloat(*it.Price)
		if !price.Equal(price.Round(2)) {
			verr.Add(fmt.Sprintf("orderItems[%d].price", i), "must have at most 2 decimal places")
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, models.OrderItem{
			Product:  productID,
			Name:     strings.TrimSpace(it.Name),
			Price:    price.InexactFloat64(),
			Quantity: it.Quantity,
			Image:    it.Image,
			Size:     it.Size,
			Color:    it.Color,
		})
	}
	if len(verr.Fields) == 0 {
		claimed := decimal.NewFromFloat(*in.TotalPrice)
		if total.Sub(claimed).Abs().GreaterThan(totalTolerance) {
			verr.Add("totalPrice", "does not match line items (expected "+total.StringFixed(2)+")")
		}
	}
	if err := verr.OrNil(); err != nil {
		s.metrics.OrderRejected()
		return nil, err
	}

	country := in.ShippingAddress.Country
	if country == "" {
		country = models.DefaultCountry
	}

	now := s.now()
	order := &models.Order{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		ShippingAddress: models.ShippingAddress{
			Street:     in.ShippingAddress.Street,
			City:       in.ShippingAddress.City,
			PostalCode: in.ShippingAddress.PostalCode,
			Country:    country,
		},
		OrderItems:    items,
		TotalPrice:    total.InexactFloat64(),
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentCashOnDelivery,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	s.metrics.OrderCreated()
	s.log.Info("order created",
		zap.String("order_id", order.ID.Hex()),
		zap.Int("items", len(order.OrderItems)),
		zap.Float64("total", order.TotalPrice),
	)
	s.publish(ctx, EventOrderCreated, order)
	return order, nil
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	oid, err := parseOrderID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, oid)
}

// Confirm moves a Pending order to Confirmed and emails the customer.
func (s *OrderService) Confirm(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.transition(ctx, id, "confirm", models.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "confirmation", order, confirmationMessage(order))
	return order, nil
}

// Cancel moves a Pending or Confirmed order to Cancelled and emails the customer.
func (s *OrderService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.transition(ctx, id, "cancel", models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "cancellation", order, cancellationMessage(order))
	return order, nil
}

func (s *OrderService) Ship(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.transition(ctx, id, "ship", models.OrderStatusShipped)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "shipment", order, shipmentMessage(order))
	return order, nil
}

func (s *OrderService) Deliver(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.transition(ctx, id, "deliver", models.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, "delivery", order, deliveryMessage(order))
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, id, action string, to models.OrderStatus) (*models.Order, error) {
	oid, err := parseOrderID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.store.UpdateStatus(ctx, oid, models.SourcesOf(to), to, s.now())
	if errors.Is(err, ErrStatusMismatch) {
		terr := &TransitionError{Action: action}
		if order != nil {
			terr.Current = order.Status
		}
		return nil, terr
	}
	if err != nil {
		return nil, err
	}

	s.metrics.StatusChanged(string(to))
	s.log.Info("order status changed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("status", string(to)),
	)
	s.publish(ctx, EventOrderStatusChanged, order)
	return order, nil
}

// notify makes exactly one delivery attempt. A failure is logged and counted
// and never changes the result of the operation that triggered it.
func (s *OrderService) notify(ctx context.Context, kind string, order *models.Order, msg mailer.Message) {
	err := s.mailer.Send(ctx, msg)
	s.metrics.Notification(kind, err == nil)
	if err != nil {
		s.log.Warn("order notification failed",
			zap.String("kind", kind),
			zap.String("order_id", order.ID.Hex()),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return
	}
	s.log.Debug("order notification sent",
		zap.String("kind", kind),
		zap.String("order_id", order.ID.Hex()),
	)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.events == nil {
		return
	}
	event := OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    order.ID.Hex(),
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		OccurredAt: s.now(),
	}
	if err := s.events.Publish(ctx, event.OrderID, event); err != nil {
		s.log.Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}

func parseOrderID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidOrderID
	}
	return oid, nil
}
