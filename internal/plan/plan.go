// Package plan gates store capabilities on the features of its subscription.
package plan

import "strings"

const (
	FeatureVariants            = "variants"
	FeatureUnlimitedProducts   = "unlimited_products"
	FeatureUnlimitedCategories = "unlimited_categories"
)

// Limits apply when the matching unlimited feature is absent. Zero means no limit.
type Limits struct {
	MaxProducts   int
	MaxCategories int
}

func HasFeature(features []string, key string) bool {
	key = strings.TrimSpace(key)
	for _, f := range features {
		if strings.EqualFold(strings.TrimSpace(f), key) {
			return true
		}
	}
	return false
}

// CanAddProduct reports whether one more product fits next to count existing ones.
func CanAddProduct(features []string, l Limits, count int) bool {
	return fits(features, FeatureUnlimitedProducts, l.MaxProducts, count)
}

func CanAddCategory(features []string, l Limits, count int) bool {
	return fits(features, FeatureUnlimitedCategories, l.MaxCategories, count)
}

func fits(features []string, unlimited string, max, count int) bool {
	if max <= 0 || HasFeature(features, unlimited) {
		return true
	}
	return count < max
}

// ParseFeatures splits a comma separated feature list, dropping blanks.
func ParseFeatures(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
