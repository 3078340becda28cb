// Package cart aggregates cart lines by a stable (product, variant) key.
// Every mutation returns a new slice and leaves its input untouched; when
// nothing changes the input is returned as is.
package cart

import "vitrina/internal/domain"

const simpleSuffix = "simple"

// LineID is the aggregation key of a cart line.
func LineID(productID, variantID string) string {
	if variantID == "" {
		variantID = simpleSuffix
	}
	return productID + "_" + variantID
}

func Find(lines []domain.CartLine, id string) (domain.CartLine, bool) {
	if i := index(lines, id); i >= 0 {
		return lines[i], true
	}
	return domain.CartLine{}, false
}

// Add merges line into the cart. The increment is capped so the quantity
// never climbs past available, and an add never lowers an existing line.
// A line that would end up empty is not added, and an existing line whose
// unit has run out of stock is removed.
func Add(lines []domain.CartLine, line domain.CartLine, available int) []domain.CartLine {
	if line.Quantity < 1 {
		return lines
	}
	line.CartItemID = LineID(line.ProductID, line.VariantID)

	if i := index(lines, line.CartItemID); i >= 0 {
		if available < 1 {
			return Remove(lines, line.CartItemID)
		}
		cur := lines[i].Quantity
		qty := clamp(cur+line.Quantity, available)
		if qty <= cur {
			return lines
		}
		out := clone(lines)
		out[i].Quantity = qty
		return out
	}

	line.Quantity = clamp(line.Quantity, available)
	if line.Quantity < 1 {
		return lines
	}
	return append(clone(lines), line)
}

// UpdateQuantity applies a signed delta to one line, clamped to
// [0, available]. A line reaching zero is removed.
func UpdateQuantity(lines []domain.CartLine, id string, delta, available int) []domain.CartLine {
	i := index(lines, id)
	if i < 0 {
		return lines
	}
	qty := clamp(lines[i].Quantity+delta, available)
	if qty == 0 {
		return Remove(lines, id)
	}
	if qty == lines[i].Quantity {
		return lines
	}
	out := clone(lines)
	out[i].Quantity = qty
	return out
}

func Remove(lines []domain.CartLine, id string) []domain.CartLine {
	if index(lines, id) < 0 {
		return lines
	}
	out := make([]domain.CartLine, 0, len(lines)-1)
	for _, l := range lines {
		if l.CartItemID != id {
			out = append(out, l)
		}
	}
	return out
}

func Total(lines []domain.CartLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the number of units in the cart.
func Count(lines []domain.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func index(lines []domain.CartLine, id string) int {
	for i, l := range lines {
		if l.CartItemID == id {
			return i
		}
	}
	return -1
}

func clone(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines), len(lines)+1)
	copy(out, lines)
	return out
}

func clamp(qty, available int) int {
	if qty < 0 {
		return 0
	}
	if available < 0 {
		available = 0
	}
	if qty > available {
		return available
	}
	return qty
}
