package tool

import "github.com/shopspring/decimal"

// Low enough that NewFromFloatWithExponent keeps every binary digit of a float64.
const exactExponent = -1100

type DiscountResult struct {
	DiscountedPrice float64 `json:"discounted_price"`
}

func (r DiscountResult) Record() map[string]any {
	return map[string]any{"discounted_price": r.DiscountedPrice}
}

// CalculateDiscount returns price*(1-percentage/100) in float64 arithmetic,
// rounded to 2 decimals half to even on the exact binary value, so 0.125
// gives 0.12 and 2.675 (stored as 2.67499...) gives 2.67. Percentages
// outside 0..100 are applied as given.
func CalculateDiscount(price, percentage float64) DiscountResult {
	raw := float64(price * float64(1-percentage/100))
	discounted, _ := decimal.NewFromFloatWithExponent(raw, exactExponent).RoundBank(2).Float64()
	return DiscountResult{DiscountedPrice: discounted}
}
