//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/vedicmetrics/ChandasDNA/pkg/chandasdna"
)

var (
	port           int
	dbPath         string
	genaiModel     string
	allowedOrigins string
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&dbPath, "db", getEnvOrDefault("CHANDAS_DB_PATH", "chandasdna.sqlite3"), "Path to SQLite database")
	flag.StringVar(&genaiModel, "model", getEnvOrDefault("CHANDAS_GENAI_MODEL", ""), "Gemini model for the primary identifier (requires GENAI_API_KEY)")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	flag.Parse()

	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	service, err := chandasdna.NewService(
		chandasdna.WithDBPath(dbPath),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	// The algorithmic engine answers every request on its own. With an API
	// key it becomes the fallback behind the model identifier instead.
	var identifier chandasdna.Identifier = service
	modelBacked := false
	if apiKey := os.Getenv("GENAI_API_KEY"); apiKey != "" {
		model, err := chandasdna.NewModelIdentifier(context.Background(), apiKey, genaiModel)
		if err != nil {
			log.Fatalf("Failed to create model identifier: %v", err)
		}
		identifier = &chandasdna.Fallback{
			Primary:       model,
			Secondary:     service,
			MinConfidence: 0.6,
		}
		modelBacked = true
	}

	config := &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		ModelBacked:    modelBacked,
		AllowedOrigins: origins,
	}

	server := NewServer(service, identifier, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
