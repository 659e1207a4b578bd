// Package pricing holds the static price-per-SKU lookup tables used to
// annotate resources with a display cost. The figures are estimates for the
// dashboard, not billing data.
package pricing

import "fmt"

type table struct {
	skus       map[string]float64
	defaultSKU string
}

var tables = map[string]table{
	"aws": {
		defaultSKU: "t3.micro",
		skus: map[string]float64{
			"t2.micro":  8.76,
			"t3.micro":  7.59,
			"t3.small":  15.18,
			"t3.medium": 30.37,
			"t3.large":  60.74,
			"m5.large":  69.12,
			"m5.xlarge": 138.24,
		},
	},
	"gcp": {
		defaultSKU: "e2-medium",
		skus: map[string]float64{
			"e2-micro":      5.84,
			"e2-small":      11.68,
			"e2-medium":     23.36,
			"e2-standard-2": 46.72,
			"e2-standard-4": 93.44,
			"n1-standard-1": 24.27,
			"n1-standard-2": 48.54,
			"n1-standard-4": 97.09,
		},
	},
	"azure": {
		defaultSKU: "Standard_B2s",
		skus: map[string]float64{
			"Standard_B1s":    7.30,
			"Standard_B2s":    29.93,
			"Standard_D2s_v3": 70.08,
			"Standard_D4s_v3": 140.16,
			"Standard_E2s_v3": 91.98,
		},
	},
	"ibm": {
		defaultSKU: "bx2-2x8",
		skus: map[string]float64{
			"bx2-2x8":  45.60,
			"bx2-4x16": 91.20,
			"bx2-8x32": 182.40,
			"cx2-2x4":  38.40,
			"cx2-4x8":  76.80,
			"mx2-2x16": 67.20,
			"mx2-4x32": 134.40,
		},
	},
}

// InstanceMonthly estimates the monthly cost of an instance SKU as a display
// string. Unknown providers and SKUs resolve to the provider's default SKU
// price (or the AWS default when the provider itself is unknown) so the
// lookup is total: it never errors and never yields NaN.
func InstanceMonthly(provider, sku string) string {
	t, ok := tables[provider]
	if !ok {
		t = tables["aws"]
	}
	price, ok := t.skus[sku]
	if !ok {
		price = t.skus[t.defaultSKU]
	}
	return format(price)
}

// DefaultSKU returns the SKU substituted when a create request omits one.
func DefaultSKU(provider string) string {
	t, ok := tables[provider]
	if !ok {
		t = tables["aws"]
	}
	return t.defaultSKU
}

// DatabaseMonthly estimates a managed database's monthly cost from its plan
// tier.
func DatabaseMonthly(tier string) string {
	if tier == "standard" {
		return format(89.12)
	}
	return format(45.60)
}

// StorageMonthly estimates object storage cost. Flat rate; actual usage
// pricing is out of scope for the dashboard.
func StorageMonthly() string {
	return format(48.30)
}

func format(price float64) string {
	return fmt.Sprintf("$%.2f/month", price)
}
