package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/urbanx-storefront/pkg/config"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
)

func defaultRates() Rates {
	return RatesFromConfig(config.CheckoutConfig{
		TaxRate:          decimal.RequireFromString("0.10"),
		ShippingStandard: decimal.NewFromInt(10),
		ShippingExpress:  decimal.NewFromInt(25),
	})
}

func TestComputeQuote(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		method   enums.ShippingMethod
		tax      string
		shipping string
		total    string
	}{
		{"standard", "399.96", enums.ShippingMethodStandard, "40", "10", "449.96"},
		{"express", "89.99", enums.ShippingMethodExpress, "9", "25", "123.99"},
		{"tax rounds half up", "0.05", enums.ShippingMethodStandard, "0.01", "10", "10.06"},
		{"empty cart", "0", enums.ShippingMethodStandard, "0", "10", "10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ComputeQuote(defaultRates(), decimal.RequireFromString(tc.subtotal), tc.method)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertDecimal(t, "tax", tc.tax, q.Tax)
			assertDecimal(t, "shipping", tc.shipping, q.Shipping)
			assertDecimal(t, "total", tc.total, q.Total)
			if !q.Total.Equal(q.Subtotal.Add(q.Tax).Add(q.Shipping)) {
				t.Fatalf("total %s is not the sum of its parts", q.Total)
			}
			if q.ShippingMethod != tc.method {
				t.Fatalf("expected method %s, got %s", tc.method, q.ShippingMethod)
			}
		})
	}
}

func TestComputeQuoteRejectsUnknownShipping(t *testing.T) {
	if _, err := ComputeQuote(defaultRates(), decimal.NewFromInt(1), "overnight"); err == nil {
		t.Fatal("expected error for unknown shipping method")
	}
}

func assertDecimal(t *testing.T, field, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s, got %s", field, want, got)
	}
}
