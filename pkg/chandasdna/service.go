//go:build !js && !wasm
// +build !js,!wasm

// Package chandasdna is the public face of the meter identification engine.
// It wires the scanning pipeline, the SQLite-backed catalogue and the
// optional model identifier behind small interfaces.
package chandasdna

import (
	"context"
	"fmt"

	"github.com/vedicmetrics/ChandasDNA/internal/meter"
	"github.com/vedicmetrics/ChandasDNA/internal/service"
	"github.com/vedicmetrics/ChandasDNA/internal/storage"
	"github.com/vedicmetrics/ChandasDNA/pkg/logger"
	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// chandasService is the default implementation of the Service interface.
type chandasService struct {
	svc    *service.ChandasService
	log    Logger
	config *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	db, err := storage.NewDBClientWithPath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	svc, err := service.NewChandasServiceWithDB(db, cfg.Options, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &chandasService{
		svc:    svc,
		log:    cfg.Logger,
		config: cfg,
	}, nil
}

func (s *chandasService) Identify(ctx context.Context, shloka, hint string) (*models.Identification, error) {
	return s.svc.Identify(ctx, shloka, hint)
}

func (s *chandasService) ListMeters() ([]models.MeterSummary, error) {
	return s.svc.ListMeters()
}

func (s *chandasService) GetMeter(name string) (*models.MeterSummary, error) {
	return s.svc.GetMeter(name)
}

func (s *chandasService) MeterContext(name string) (*models.CulturalContext, error) {
	return s.svc.MeterContext(name)
}

func (s *chandasService) AddMeter(def models.MeterDefinition) (string, error) {
	return s.svc.AddMeter(toDefinition(def))
}

func (s *chandasService) DeleteMeter(name string) error {
	return s.svc.DeleteMeter(name)
}

func (s *chandasService) Close() error {
	return s.svc.Close()
}

func toDefinition(def models.MeterDefinition) meter.Definition {
	out := meter.Definition{
		Name:          def.Name,
		Aliases:       def.Aliases,
		Family:        meter.Family(def.Family),
		Pattern:       def.Pattern,
		EvenPattern:   def.EvenPattern,
		FreePositions: def.FreePositions,
	}
	if def.Context != nil {
		out.Info = &meter.CulturalInfo{
			Structure:    def.Context.Structure,
			Symbolism:    def.Context.Symbolism,
			Deity:        def.Context.Deity,
			Meaning:      def.Context.Meaning,
			Significance: def.Context.Significance,
		}
	}
	return out
}
