package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Strict(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPlaced, StatusConfirmed, true},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPlaced, StatusShipped, false},
		{StatusShipped, StatusPlaced, false},
		{StatusPlaced, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPlaced, false},
		{StatusDelivered, StatusDelivered, true},
		{StatusPlaced, Status("lost"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to, false), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_Permissive(t *testing.T) {
	assert.True(t, CanTransition(StatusDelivered, StatusPlaced, true))
	assert.True(t, CanTransition(StatusCancelled, StatusShipped, true))
	assert.False(t, CanTransition(StatusPlaced, Status("lost"), true))
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(StatusPlaced)
	assert.Equal(t, 1, p.StepsCompleted)
	assert.False(t, p.Cancelled)

	p = ProgressOf(StatusDelivered)
	assert.Equal(t, len(Steps), p.StepsCompleted)
	assert.True(t, p.Delivered)

	p = ProgressOf(StatusCancelled)
	assert.Equal(t, 0, p.StepsCompleted)
	assert.True(t, p.Cancelled)
	assert.Equal(t, Steps, p.Steps)
}

func TestNewOrderNumber_Format(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		no, err := NewOrderNumber()
		assert.NoError(t, err)
		assert.True(t, ValidOrderNo(no), no)
		seen[no] = true
	}
	assert.Greater(t, len(seen), 190)
	assert.False(t, ValidOrderNo("ARXq7k2m1"))
	assert.False(t, ValidOrderNo("ARX12345"))
}

func TestComputeTotals(t *testing.T) {
	items := []Item{{Price: 17.5, Quantity: 2}, {Price: 0.1, Quantity: 3}}
	got := ComputeTotals(items, 80)
	assert.Equal(t, 5, got.ItemsCount)
	assert.Equal(t, 35.3, got.Subtotal)
	assert.Equal(t, 80.0, got.Shipping)
	assert.Equal(t, 115.3, got.Total)

	assert.True(t, got.Agrees(Totals{ItemsCount: 5, Subtotal: 35.304, Shipping: 80, Total: 115.3}))
	assert.False(t, got.Agrees(Totals{ItemsCount: 5, Subtotal: 35.31, Shipping: 80, Total: 115.3}))
	assert.False(t, got.Agrees(Totals{ItemsCount: 4, Subtotal: 35.3, Shipping: 80, Total: 115.3}))
}
