package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vitrina/internal/plan"
)

func TestHasFeature(t *testing.T) {
	fs := plan.ParseFeatures(" variants, ,Unlimited_Products ")
	assert.Equal(t, []string{"variants", "Unlimited_Products"}, fs)
	assert.True(t, plan.HasFeature(fs, plan.FeatureVariants))
	assert.True(t, plan.HasFeature(fs, plan.FeatureUnlimitedProducts))
	assert.False(t, plan.HasFeature(fs, plan.FeatureUnlimitedCategories))
	assert.False(t, plan.HasFeature(nil, plan.FeatureVariants))
}

func TestLimits(t *testing.T) {
	l := plan.Limits{MaxProducts: 2, MaxCategories: 1}
	assert.True(t, plan.CanAddProduct(nil, l, 1))
	assert.False(t, plan.CanAddProduct(nil, l, 2))
	assert.True(t, plan.CanAddProduct([]string{plan.FeatureUnlimitedProducts}, l, 50))

	assert.False(t, plan.CanAddCategory(nil, l, 1))
	assert.True(t, plan.CanAddCategory(nil, plan.Limits{}, 100))
}
