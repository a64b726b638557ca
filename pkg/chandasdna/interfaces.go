package chandasdna

import (
	"context"

	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// Identifier is anything that can classify a verse. Both the algorithmic
// engine and the model-backed identifier implement it, which is what lets
// callers compose them.
type Identifier interface {
	Identify(ctx context.Context, shloka, hint string) (*models.Identification, error)
}

// Service is the full public surface: identification plus catalogue
// management.
type Service interface {
	Identifier
	ListMeters() ([]models.MeterSummary, error)
	GetMeter(name string) (*models.MeterSummary, error)
	MeterContext(name string) (*models.CulturalContext, error)
	AddMeter(def models.MeterDefinition) (string, error)
	DeleteMeter(name string) error
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
