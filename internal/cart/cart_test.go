package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/cart"
	"vitrina/internal/domain"
	"vitrina/internal/pricing"
)

func line(productID, variantID string, qty int, price float64) domain.CartLine {
	return domain.CartLine{ProductID: productID, VariantID: variantID, Name: productID, Quantity: qty, UnitPrice: price}
}

func TestLineID(t *testing.T) {
	assert.Equal(t, "p1_simple", cart.LineID("p1", ""))
	assert.Equal(t, "p1_v9", cart.LineID("p1", "v9"))
}

func TestAdd_AggregatesSameKey(t *testing.T) {
	var lines []domain.CartLine
	lines = cart.Add(lines, line("p1", "v1", 2, 1000), pricing.Unlimited)
	lines = cart.Add(lines, line("p1", "v1", 3, 1000), pricing.Unlimited)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "p1_v1", lines[0].CartItemID)

	lines = cart.Add(lines, line("p1", "", 1, 900), pricing.Unlimited)
	lines = cart.Add(lines, line("p1", "v2", 1, 1100), pricing.Unlimited)
	assert.Len(t, lines, 3)
	assert.Equal(t, 7, cart.Count(lines))
	assert.Equal(t, 5*1000.0+900+1100, cart.Total(lines))
}

func TestAdd_ClampsToStock(t *testing.T) {
	lines := cart.Add(nil, line("p1", "", 10, 1), 4)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)

	same := cart.Add(lines, line("p1", "", 1, 1), 4)
	assert.Equal(t, 4, same[0].Quantity)

	assert.Empty(t, cart.Add(nil, line("p1", "", 2, 1), 0))
	assert.Empty(t, cart.Add(nil, line("p1", "", 0, 1), 5))
}

func TestAdd_ExistingLineWhenStockDrops(t *testing.T) {
	lines := cart.Add(nil, line("p1", "v1", 3, 1), 5)

	kept := cart.Add(lines, line("p1", "v1", 1, 1), 2)
	require.Len(t, kept, 1)
	assert.Equal(t, 3, kept[0].Quantity, "an add never lowers a line")

	gone := cart.Add(lines, line("p1", "v1", 1, 1), 0)
	assert.Empty(t, gone, "a sold out line is removed")
	for _, l := range gone {
		assert.GreaterOrEqual(t, l.Quantity, 1)
	}
	assert.Len(t, lines, 1)
}

func TestMutationsAreCopyOnWrite(t *testing.T) {
	before := cart.Add(nil, line("p1", "", 2, 1), pricing.Unlimited)
	after := cart.Add(before, line("p1", "", 1, 1), pricing.Unlimited)
	assert.Equal(t, 2, before[0].Quantity)
	assert.Equal(t, 3, after[0].Quantity)

	updated := cart.UpdateQuantity(after, "p1_simple", -1, pricing.Unlimited)
	assert.Equal(t, 3, after[0].Quantity)
	assert.Equal(t, 2, updated[0].Quantity)

	removed := cart.Remove(updated, "p1_simple")
	assert.Len(t, updated, 1)
	assert.Empty(t, removed)
}

func TestUpdateQuantity(t *testing.T) {
	lines := cart.Add(nil, line("p1", "v1", 2, 1), pricing.Unlimited)

	lines = cart.UpdateQuantity(lines, "p1_v1", 10, 5)
	assert.Equal(t, 5, lines[0].Quantity)

	lines = cart.UpdateQuantity(lines, "p1_v1", -2, 5)
	assert.Equal(t, 3, lines[0].Quantity)

	unchanged := cart.UpdateQuantity(lines, "missing", 1, 5)
	assert.Equal(t, lines, unchanged)

	lines = cart.UpdateQuantity(lines, "p1_v1", -7, 5)
	assert.Empty(t, lines)
}

func TestRemoveAndFind(t *testing.T) {
	lines := cart.Add(nil, line("p1", "", 1, 1), pricing.Unlimited)
	lines = cart.Add(lines, line("p2", "", 1, 1), pricing.Unlimited)

	l, ok := cart.Find(lines, "p2_simple")
	require.True(t, ok)
	assert.Equal(t, "p2", l.ProductID)

	lines = cart.Remove(lines, "p1_simple")
	require.Len(t, lines, 1)
	_, ok = cart.Find(lines, "p1_simple")
	assert.False(t, ok)
	assert.Len(t, cart.Remove(lines, "nope"), 1)
}
