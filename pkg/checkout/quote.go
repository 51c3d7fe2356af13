package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanx-storefront/pkg/config"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
)

const centsPlaces = 2

// Rates holds the tax rate and flat shipping fees applied to a quote.
type Rates struct {
	TaxRate          decimal.Decimal
	ShippingStandard decimal.Decimal
	ShippingExpress  decimal.Decimal
}

// RatesFromConfig copies the checkout rates out of the loaded config.
func RatesFromConfig(cfg config.CheckoutConfig) Rates {
	return Rates{
		TaxRate:          cfg.TaxRate,
		ShippingStandard: cfg.ShippingStandard,
		ShippingExpress:  cfg.ShippingExpress,
	}
}

// Quote is the price breakdown shown before an order is placed. Every
// amount is rounded to cents.
type Quote struct {
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Tax            decimal.Decimal      `json:"tax"`
	Shipping       decimal.Decimal      `json:"shipping"`
	Total          decimal.Decimal      `json:"total"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
}

// ShippingFor returns the flat fee for method.
func (r Rates) ShippingFor(method enums.ShippingMethod) (decimal.Decimal, error) {
	switch method {
	case enums.ShippingMethodStandard:
		return r.ShippingStandard, nil
	case enums.ShippingMethodExpress:
		return r.ShippingExpress, nil
	}
	return decimal.Zero, fmt.Errorf("invalid shipping method %q", method)
}

// ComputeQuote prices subtotal with tax and shipping. Tax is rounded to
// cents before it is added, so Total always equals the sum of the parts.
func ComputeQuote(rates Rates, subtotal decimal.Decimal, method enums.ShippingMethod) (Quote, error) {
	shipping, err := rates.ShippingFor(method)
	if err != nil {
		return Quote{}, err
	}
	subtotal = subtotal.Round(centsPlaces)
	tax := subtotal.Mul(rates.TaxRate).Round(centsPlaces)
	shipping = shipping.Round(centsPlaces)
	return Quote{
		Subtotal:       subtotal,
		Tax:            tax,
		Shipping:       shipping,
		Total:          subtotal.Add(tax).Add(shipping),
		ShippingMethod: method,
	}, nil
}
