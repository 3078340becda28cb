// Package variants expands product options into purchasable variants and
// keeps a persisted variant set in step with option edits.
package variants

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"vitrina/internal/domain"
)

// MaxOptions is the number of option axes a product may define.
const MaxOptions = 3

const errNotAList = "options must be a list"

// Result lists every problem found, in input order. It never carries a Go error.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (r *Result) add(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

// Validate checks an option list for structural legality. A nil or empty
// list is valid: the product simply has no variants.
func Validate(opts []domain.OptionDefinition) Result {
	res := Result{Valid: true, Errors: []string{}}
	if len(opts) > MaxOptions {
		res.add("at most %d options are allowed", MaxOptions)
		return res
	}

	fold := cases.Fold()
	names := make(map[string]bool, len(opts))
	for i, o := range opts {
		name := strings.TrimSpace(o.Name)
		label := fmt.Sprintf("option %d", i+1)
		if name == "" {
			res.add("option %d needs a name", i+1)
		} else {
			label = fmt.Sprintf("option %q", name)
			k := fold.String(name)
			if names[k] {
				res.add("duplicate option name %q", name)
			}
			names[k] = true
		}

		if len(o.Values) == 0 {
			res.add("%s needs at least one value", label)
			continue
		}
		seen := make(map[string]bool, len(o.Values))
		for _, v := range o.Values {
			k := fold.String(strings.TrimSpace(v))
			if seen[k] {
				res.add("duplicate value %q in %s", strings.TrimSpace(v), label)
				continue
			}
			seen[k] = true
		}
	}
	return res
}

// DecodeOptions parses an option payload as it arrives from a client.
// Anything other than a JSON array yields the single structural error.
// Elements with a non-string name or non-array values are decoded leniently
// so that Validate can report them with the usual messages.
func DecodeOptions(raw []byte) ([]domain.OptionDefinition, Result) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, Result{Valid: false, Errors: []string{errNotAList}}
	}

	opts := make([]domain.OptionDefinition, 0, len(items))
	for _, it := range items {
		var loose struct {
			Name   any `json:"name"`
			Values any `json:"values"`
		}
		_ = json.Unmarshal(it, &loose)

		var o domain.OptionDefinition
		if s, ok := loose.Name.(string); ok {
			o.Name = s
		}
		if vs, ok := loose.Values.([]any); ok {
			for _, v := range vs {
				switch t := v.(type) {
				case string:
					o.Values = append(o.Values, t)
				case nil:
				default:
					o.Values = append(o.Values, fmt.Sprint(t))
				}
			}
		}
		opts = append(opts, o)
	}
	return opts, Validate(opts)
}
