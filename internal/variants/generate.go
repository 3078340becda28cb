package variants

import (
	"strings"

	"github.com/google/uuid"

	"vitrina/internal/domain"
)

// TitleSeparator joins option values into a variant title.
const TitleSeparator = " / "

// Generate returns one variant stub per combination of option values, in the
// declared option order. Options without a name or values are skipped. An
// empty result means the product has no variants.
func Generate(opts []domain.OptionDefinition, newID func() string) []domain.Variant {
	if newID == nil {
		newID = uuid.NewString
	}

	usable := make([]domain.OptionDefinition, 0, len(opts))
	for _, o := range opts {
		name := strings.TrimSpace(o.Name)
		if name == "" || len(o.Values) == 0 {
			continue
		}
		vals := make([]string, len(o.Values))
		for i, v := range o.Values {
			vals[i] = strings.TrimSpace(v)
		}
		usable = append(usable, domain.OptionDefinition{Name: name, Values: vals})
	}
	if len(usable) == 0 {
		return []domain.Variant{}
	}

	// combos holds value indexes per option; the first option varies slowest.
	combos := [][]int{{}}
	for _, o := range usable {
		next := make([][]int, 0, len(combos)*len(o.Values))
		for _, c := range combos {
			for i := range o.Values {
				nc := make([]int, len(c), len(c)+1)
				copy(nc, c)
				next = append(next, append(nc, i))
			}
		}
		combos = next
	}

	out := make([]domain.Variant, 0, len(combos))
	for pos, c := range combos {
		opts := make(domain.OptionValues, len(usable))
		parts := make([]string, len(usable))
		for i, o := range usable {
			v := o.Values[c[i]]
			opts[o.Name] = v
			parts[i] = v
		}
		out = append(out, domain.Variant{
			ID:       newID(),
			Title:    strings.Join(parts, TitleSeparator),
			Options:  opts,
			Price:    0,
			IsActive: true,
			Position: pos,
		})
	}
	return out
}

// Priced reports whether at least one variant has a positive price, the
// minimum for a variant set to be sellable.
func Priced(vs []domain.Variant) bool {
	for _, v := range vs {
		if v.Price > 0 {
			return true
		}
	}
	return false
}
