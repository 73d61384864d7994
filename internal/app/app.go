package app

import (
	"log"
	"os"

	"nippo/internal/config"
	"nippo/internal/httpx"
)

func Main() {
	cfg := config.LoadConfig()
	timeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf("Config loaded. DB=%s Timezone=%s ExternalHTTPTimeout=%s", cfg.DBPath, cfg.Timezone, timeout)

	if err := NewRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
