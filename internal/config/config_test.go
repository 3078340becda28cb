package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vitrina/internal/config"
	"vitrina/internal/plan"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_NAME", "")
	t.Setenv("PLAN_FEATURES", "")
	t.Setenv("MAX_PRODUCTS", "")
	cfg := config.Load()
	assert.Equal(t, "Mi Tienda", cfg.StoreName)
	assert.True(t, plan.HasFeature(cfg.Features, plan.FeatureVariants))
	assert.Equal(t, 30, cfg.Limits.MaxProducts)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_NAME", "Dulces María")
	t.Setenv("STORE_PHONE", "+57 300 123 4567")
	t.Setenv("PLAN_FEATURES", "variants,unlimited_products")
	t.Setenv("MAX_PRODUCTS", "abc")
	t.Setenv("MAX_CATEGORIES", "2")
	cfg := config.Load()
	assert.Equal(t, "Dulces María", cfg.StoreName)
	assert.Equal(t, "+57 300 123 4567", cfg.StorePhone)
	assert.Equal(t, []string{"variants", "unlimited_products"}, cfg.Features)
	assert.Equal(t, 30, cfg.Limits.MaxProducts)
	assert.Equal(t, 2, cfg.Limits.MaxCategories)
}
