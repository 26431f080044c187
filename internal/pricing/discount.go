package pricing

import "github.com/shopspring/decimal"

type DiscountType string

const (
	DiscountAmount  DiscountType = "amount"
	DiscountPercent DiscountType = "percent"
)

// Discount is one promotional entry on a quote. Percent values are whole
// percentages (10 means 10%).
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

var oneHundred = decimal.NewFromInt(100)

// DiscountTotal sums all discounts against a pre-tax base. Percent entries
// each apply to the same base and the amounts are summed before a single
// subtraction: two 10% discounts reduce the base by 20%, not a compounded 19%.
// Negative or malformed entries contribute zero.
func DiscountTotal(base decimal.Decimal, discounts []Discount) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		if d.Value.IsNegative() {
			continue
		}
		switch d.Type {
		case DiscountAmount:
			total = total.Add(d.Value)
		case DiscountPercent:
			total = total.Add(base.Mul(d.Value).Div(oneHundred))
		}
	}
	return total
}
