package order

import "github.com/shopspring/decimal"

// totalsTolerance is half a cent.
var totalsTolerance = decimal.RequireFromString("0.005")

// ComputeTotals sums price x quantity for every line, rounds to cents and
// adds the flat shipping fee.
func ComputeTotals(items []Item, shipping float64) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	subtotal = subtotal.Round(2)
	ship := decimal.NewFromFloat(shipping).Round(2)
	return Totals{
		ItemsCount: count,
		Subtotal:   subtotal.InexactFloat64(),
		Shipping:   ship.InexactFloat64(),
		Total:      subtotal.Add(ship).InexactFloat64(),
	}
}

// Agrees reports whether client-submitted totals match the computed ones.
func (t Totals) Agrees(client Totals) bool {
	if t.ItemsCount != client.ItemsCount {
		return false
	}
	pairs := [][2]float64{
		{t.Subtotal, client.Subtotal},
		{t.Shipping, client.Shipping},
		{t.Total, client.Total},
	}
	for _, p := range pairs {
		diff := decimal.NewFromFloat(p[0]).Sub(decimal.NewFromFloat(p[1])).Abs()
		if diff.GreaterThan(totalsTolerance) {
			return false
		}
	}
	return true
}
