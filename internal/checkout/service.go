package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/angelmondragon/urbanx-storefront/internal/cart"
	pkgcheckout "github.com/angelmondragon/urbanx-storefront/pkg/checkout"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
)

var (
	// ErrCartEmpty is returned when an order is submitted for an empty cart.
	ErrCartEmpty = pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	// ErrCartChanged is returned when the cart was modified while the order
	// was processing. The cart is left as it is.
	ErrCartChanged = pkgerrors.New(pkgerrors.CodeStateConflict, "cart changed during checkout")
)

// CartStore is the slice of *cart.Store that checkout needs.
type CartStore interface {
	Snapshot() cart.State
	ClearIfVersion(ctx context.Context, version uint64) (cart.State, error)
}

type checkoutRecorder interface {
	ObserveCheckout(duration time.Duration, err error)
}

// Service prices carts and places simulated orders.
type Service interface {
	Quote(state cart.State, method enums.ShippingMethod) (pkgcheckout.Quote, error)
	Submit(ctx context.Context, store CartStore, input Input) (*Confirmation, error)
}

// Contact is the shipping contact captured by the checkout form.
type Contact struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Address   string `json:"address" validate:"required,max=200"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	ZipCode   string `json:"zip_code" validate:"required,max=20"`
	Country   string `json:"country" validate:"omitempty,oneof=US CA UK AU"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// Input is an order submission.
type Input struct {
	Contact        Contact              `json:"contact"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method" validate:"required,oneof=credit-card paypal"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method" validate:"omitempty,oneof=standard express"`
}

// Confirmation describes a placed order. Nothing is persisted.
type Confirmation struct {
	OrderNumber   uuid.UUID           `json:"order_number"`
	Quote         pkgcheckout.Quote   `json:"quote"`
	Lines         []cart.Line         `json:"lines"`
	Contact       Contact             `json:"contact"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	PlacedAt      time.Time           `json:"placed_at"`
}

const defaultCountry = "US"

type service struct {
	rates    pkgcheckout.Rates
	delay    time.Duration
	validate *validator.Validate
	logg     *logger.Logger
	metrics  checkoutRecorder
	now      func() time.Time
}

// ServiceParams configure the checkout service.
type ServiceParams struct {
	Rates   pkgcheckout.Rates
	Delay   time.Duration
	Logger  *logger.Logger
	Metrics checkoutRecorder
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Delay < 0 {
		return nil, fmt.Errorf("checkout delay must not be negative")
	}
	if params.Rates.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		rates:    params.Rates,
		delay:    params.Delay,
		validate: validator.New(),
		logg:     logg,
		metrics:  params.Metrics,
		now:      time.Now,
	}, nil
}

func (s *service) Quote(state cart.State, method enums.ShippingMethod) (pkgcheckout.Quote, error) {
	if method == "" {
		method = enums.ShippingMethodStandard
	}
	q, err := pkgcheckout.ComputeQuote(s.rates, state.TotalPrice, method)
	if err != nil {
		return pkgcheckout.Quote{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method").WithDetails(map[string]any{"shipping_method": method})
	}
	return q, nil
}

// Submit validates input, waits out the processing delay and clears the cart.
// A canceled context, or a cart modified during the delay, leaves the cart
// untouched.
func (s *service) Submit(ctx context.Context, store CartStore, input Input) (conf *Confirmation, err error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveCheckout(time.Since(start), err)
		}
	}()

	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	}
	if input.Contact.Country == "" {
		input.Contact.Country = defaultCountry
	}
	if input.ShippingMethod == "" {
		input.ShippingMethod = enums.ShippingMethodStandard
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout details")
	}

	state := store.Snapshot()
	if state.IsEmpty() {
		return nil, ErrCartEmpty
	}
	quote, err := s.Quote(state, input.ShippingMethod)
	if err != nil {
		return nil, err
	}

	if err := s.wait(ctx); err != nil {
		s.logg.Warn(ctx, "checkout canceled before completion")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout canceled")
	}

	if _, err := store.ClearIfVersion(ctx, state.Version); err != nil {
		if errors.Is(err, cart.ErrVersionMismatch) {
			s.logg.Warn(s.logg.WithField(ctx, "cart_version", state.Version), "cart changed during checkout")
			return nil, ErrCartChanged.Detailed(pkgerrors.As(err).Details())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}

	conf = &Confirmation{
		OrderNumber:   uuid.New(),
		Quote:         quote,
		Lines:         state.Lines,
		Contact:       input.Contact,
		PaymentMethod: input.PaymentMethod,
		PlacedAt:      s.now().UTC(),
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"event":        "checkout.placed",
		"order_number": conf.OrderNumber.String(),
		"total":        quote.Total.StringFixed(2),
		"items":        state.TotalItems,
	}), "order placed")
	return conf, nil
}

func (s *service) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
