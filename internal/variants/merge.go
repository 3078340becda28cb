package variants

import "vitrina/internal/domain"

// Reconciliation is the outcome of laying a freshly generated variant set
// over the persisted one.
type Reconciliation struct {
	Variants []domain.Variant `json:"variants"`
	// Orphaned are persisted variants whose option combination no longer
	// exists. They are not part of Variants.
	Orphaned []domain.Variant `json:"orphaned"`
}

// Merge keeps the commercial data of existing variants whose option
// combination survives in fresh. Fresh variants without a match are kept as
// new, zero-priced stubs; existing variants without a match are dropped.
func Merge(existing, fresh []domain.Variant) []domain.Variant {
	return Reconcile(existing, fresh).Variants
}

// Reconcile is Merge, but also returns the existing variants it dropped.
func Reconcile(existing, fresh []domain.Variant) Reconciliation {
	byKey := make(map[string]domain.Variant, len(existing))
	for _, v := range existing {
		k := Key(v.Options)
		if _, dup := byKey[k]; !dup {
			byKey[k] = v
		}
	}

	out := make([]domain.Variant, 0, len(fresh))
	used := make(map[string]bool, len(fresh))
	for _, f := range fresh {
		k := Key(f.Options)
		old, ok := byKey[k]
		if !ok {
			out = append(out, f)
			continue
		}
		used[k] = true
		m := f
		m.ID = old.ID
		if old.ProductID != "" {
			m.ProductID = old.ProductID
		}
		m.Price = old.Price
		m.ComparePrice = old.ComparePrice
		m.SKU = old.SKU
		m.StockQuantity = old.StockQuantity
		m.ImageURL = old.ImageURL
		m.IsActive = old.IsActive
		out = append(out, m)
	}

	orphaned := []domain.Variant{}
	for _, v := range existing {
		if !used[Key(v.Options)] {
			orphaned = append(orphaned, v)
		}
	}
	return Reconciliation{Variants: out, Orphaned: orphaned}
}

// Recompute is the single command run when an owner commits an option edit:
// validate, regenerate, then reconcile against what is persisted. Nothing is
// generated when validation fails.
func Recompute(opts []domain.OptionDefinition, existing []domain.Variant, newID func() string) (Reconciliation, Result) {
	res := Validate(opts)
	if !res.Valid {
		return Reconciliation{}, res
	}
	return Reconcile(existing, Generate(opts, newID)), res
}
