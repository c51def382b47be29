package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
	"github.com/villa-93/mini-store/internal/messaging/payloads"
)

type orderInteractor struct {
	carts     ports.CartStorage
	orders    ports.OrderStorage
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewOrderUseCase builds the order interactor.
func NewOrderUseCase(
	carts ports.CartStorage,
	orders ports.OrderStorage,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) OrderUseCase {
	return &orderInteractor{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// buildOrder computes the order, line items and payment from the cart
// lines. Prices are the snapshot taken when the lines were fetched; the
// three totals are equal by construction.
func buildOrder(userID int64, lines []domain.CartLine, shippingAddress, paymentMethod, reference string) (domain.Order, []domain.OrderLineItem, domain.Payment) {
	total := decimal.Zero
	items := make([]domain.OrderLineItem, 0, len(lines))

	for _, l := range lines {
		subtotal := l.Subtotal()
		total = total.Add(subtotal)
		items = append(items, domain.OrderLineItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Subtotal:  subtotal,
		})
	}

	order := domain.Order{
		UserID:          userID,
		Total:           total,
		ShippingAddress: shippingAddress,
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	payment := domain.Payment{
		Method:    paymentMethod,
		Total:     total,
		Status:    domain.PaymentStatusApproved,
		Reference: reference,
	}

	return order, items, payment
}

// newPaymentReference generates a reference unique in practice.
func newPaymentReference() string {
	return "REF-" + uuid.NewString()
}

// PlaceOrder is the core workflow: fetch the cart with current prices,
// build order/items/payment from that snapshot, persist them and clear
// the cart in one transaction, then publish the event best-effort.
func (o *orderInteractor) PlaceOrder(ctx context.Context, identity domain.Identity, shippingAddress, paymentMethod string) (int64, string, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return 0, "", ErrEmptyAddress
	}
	if !domain.ValidPaymentMethod(paymentMethod) {
		return 0, "", ErrInvalidPaymentMethod
	}

	lines, err := o.carts.ListForUser(ctx, identity.ID)
	if err != nil {
		return 0, "", fmt.Errorf("fetching cart: %w", err)
	}
	if len(lines) == 0 {
		return 0, "", ErrCartEmpty
	}

	order, items, payment := buildOrder(identity.ID, lines, shippingAddress, paymentMethod, newPaymentReference())

	if err := o.orders.CreateOrder(ctx, &order, items, &payment); err != nil {
		return 0, "", fmt.Errorf("creating order: %w", err)
	}

	// The order stands even if the event does not go out; the worker only
	// sends the confirmation mail.
	if err := o.publisher.PublishOrderPlaced(ctx, payloads.OrderPlacedPayload{
		OrderID:   order.ID,
		UserID:    identity.ID,
		UserName:  identity.Name,
		UserEmail: identity.Email,
		Total:     order.Total.StringFixed(2),
		Reference: payment.Reference,
	}); err != nil {
		o.logger.Error("failed to publish order event", "order_id", order.ID, "error", err)
	}

	o.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", identity.ID,
		"total", order.Total.String(),
		"reference", payment.Reference,
	)
	return order.ID, payment.Reference, nil
}

func (o *orderInteractor) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return o.orders.ListByUser(ctx, userID)
}

func (o *orderInteractor) OrderDetail(ctx context.Context, userID, orderID int64) ([]domain.OrderDetailRow, error) {
	rows, err := o.orders.GetDetail(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrOrderNotFound
	}
	return rows, nil
}
