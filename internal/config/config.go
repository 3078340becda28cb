package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"vitrina/internal/plan"
)

type Config struct {
	Port     string
	DBDSN    string
	LogFile  string
	MediaDir string

	StoreName  string
	StorePhone string

	Features []string
	Limits   plan.Limits

	OwnerEmail    string
	OwnerPassword string
}

func Load() Config {
	cfg := Config{
		Port:          env("PORT", "8080"),
		DBDSN:         env("DB_DSN", "vitrina.db"), // sqlite file in project root
		LogFile:       env("LOG_FILE", "./vitrina.log"),
		MediaDir:      env("MEDIA_DIR", "./web/media"),
		StoreName:     env("STORE_NAME", "Mi Tienda"),
		StorePhone:    env("STORE_PHONE", ""),
		Features:      plan.ParseFeatures(env("PLAN_FEATURES", plan.FeatureVariants)),
		OwnerEmail:    env("OWNER_EMAIL", "owner@vitrina.test"),
		OwnerPassword: os.Getenv("OWNER_PASSWORD"),
		Limits: plan.Limits{
			MaxProducts:   envInt("MAX_PRODUCTS", 30),
			MaxCategories: envInt("MAX_CATEGORIES", 5),
		},
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s STORE=%q FEATURES=%s MAX_PRODUCTS=%d MAX_CATEGORIES=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.StoreName, strings.Join(cfg.Features, ","),
		cfg.Limits.MaxProducts, cfg.Limits.MaxCategories)
	return cfg
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}
