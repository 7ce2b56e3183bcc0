package commands

import (
	"fmt"
	"log"
	"os"

	"suggestbox/internal/config"
	"suggestbox/internal/source"
)

// loadConfig reads the config file (default location when path is empty),
// applies the endpoint override and validates the result
func loadConfig(path, endpoint string) (*config.Config, error) {
	svc := config.NewConfigService()
	if path != "" {
		svc = config.NewConfigServiceAt(path)
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		cfg.Source.Endpoint = endpoint
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", svc.Path(), err)
	}
	return cfg, nil
}

// setupLogging redirects the standard logger to path and returns a closer.
// When the file cannot be opened logging stays on stderr.
func setupLogging(path string) func() {
	if path == "" {
		return func() {}
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() {
		log.SetOutput(os.Stderr)
		logFile.Close()
	}
}

func newHTTPSource(cfg *config.Config) *source.HTTPSource {
	return source.NewHTTPSource(cfg.Source.URL(), source.HTTPOptions{
		Timeout:   cfg.Source.Timeout(),
		RateLimit: cfg.Source.RateLimit,
	})
}
