package main

import (
	"net/http"
	"os"

	"kb-server/logging"
	"kb-server/webclient"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log := logging.New(envOr("APP_ENV", "development"))

	apiURL := envOr("API_URL", "http://localhost:8000")
	port := envOr("WEB_PORT", "3000")
	templateDir := envOr("TEMPLATE_DIR", "webclient/templates")

	srv, err := webclient.New(apiURL, templateDir, log)
	if err != nil {
		log.Fatalf("failed to initialize web client: %v", err)
	}

	log.WithField("port", port).Info("web client listening")
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		log.Fatalf("web client error: %v", err)
	}
}
