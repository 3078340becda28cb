// Package order renders a cart as the text message a shopper sends to the
// store, and the WhatsApp deep link that carries it.
package order

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"vitrina/internal/domain"
	"vitrina/internal/money"
)

type Line struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

func (l Line) Subtotal() float64 { return l.UnitPrice * float64(l.Quantity) }

// Lines adapts cart lines, naming variant lines "Name (Variant title)".
func Lines(cl []domain.CartLine) []Line {
	out := make([]Line, 0, len(cl))
	for _, c := range cl {
		name := c.Name
		if c.VariantTitle != "" {
			name = fmt.Sprintf("%s (%s)", c.Name, c.VariantTitle)
		}
		out = append(out, Line{Name: name, Quantity: c.Quantity, UnitPrice: c.UnitPrice})
	}
	return out
}

func Total(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Message renders the order text. The customer line is left out when
// customer is blank. A nil format falls back to Colombian pesos.
func Message(lines []Line, store, customer string, format money.Formatter) string {
	if format == nil {
		format = money.COP
	}

	var b strings.Builder
	b.WriteString("¡Hola! 👋\n\n")
	fmt.Fprintf(&b, "Quiero hacer un pedido en *%s*:\n\n", strings.TrimSpace(store))
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. %s x%d - %s\n", i+1, l.Name, l.Quantity, format(l.Subtotal()))
	}
	if len(lines) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "💰 *Total: %s*\n\n", format(Total(lines)))
	if name := strings.TrimSpace(customer); name != "" {
		fmt.Fprintf(&b, "Mi nombre es: %s\n\n", name)
	}
	b.WriteString("¡Gracias! 🙏")
	return b.String()
}

// Encode percent-encodes text for a query value; spaces become %20.
func Encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Link builds https://wa.me/<digits>?text=<encoded message>. Anything but
// digits is stripped from phone.
func Link(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + Encode(message)
}
