//go:build !js && !wasm
// +build !js,!wasm

// Package service orchestrates the identification pipeline: quarter
// splitting, syllable scanning, catalogue matching and explanation, plus
// catalogue management on top of the storage layer.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/vedicmetrics/ChandasDNA/internal/meter"
	"github.com/vedicmetrics/ChandasDNA/internal/model"
	"github.com/vedicmetrics/ChandasDNA/internal/scan"
	"github.com/vedicmetrics/ChandasDNA/internal/storage"
	"github.com/vedicmetrics/ChandasDNA/internal/verse"
	"github.com/vedicmetrics/ChandasDNA/pkg/logger"
	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// Logger is the logging surface the service writes to. *logger.Logger
// satisfies it; callers may inject their own.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

// ChandasService is the main application service. The active catalogue is
// swapped atomically when meters are added or removed, so identification
// never blocks on catalogue writes.
type ChandasService struct {
	db   *storage.DBClient
	cat  atomic.Pointer[meter.Catalogue]
	opts meter.Options
	log  Logger
}

func NewChandasService() (*ChandasService, error) {
	db, err := storage.NewDBClient()
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return NewChandasServiceWithDB(db, meter.DefaultOptions(), nil)
}

// NewChandasServiceWithDB builds the service on an already opened storage
// client. A nil log falls back to the shared logger.
func NewChandasServiceWithDB(db *storage.DBClient, opts meter.Options, log Logger) (*ChandasService, error) {
	cat, err := db.LoadCatalogue()
	if err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}
	if log == nil {
		log = logger.GetLogger()
	}
	s := &ChandasService{db: db, opts: opts, log: log}
	s.cat.Store(cat)
	s.log.Infof("catalogue loaded with %d meters", cat.Len())
	return s, nil
}

func (s *ChandasService) Close() error {
	return s.db.Close()
}

// Identify runs the full pipeline on a verse. hint may name an expected
// meter and is only ever used to boost, never to disqualify. Input with no
// metrical content yields an unidentified result, not an error.
func (s *ChandasService) Identify(ctx context.Context, shloka, hint string) (*models.Identification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quarters := verse.Quarters(shloka)
	if len(quarters) == 0 {
		return &models.Identification{
			Verdict:     string(meter.Unidentified),
			Explanation: "The input contains no metrical content after normalization.",
			Source:      "algorithmic",
		}, nil
	}

	scanned := make([][]model.Syllable, len(quarters))
	weights := make([][]model.Weight, len(quarters))
	for qi, q := range quarters {
		scanned[qi] = scan.Scan(q)
		weights[qi] = model.Weights(scanned[qi])
	}

	res := s.cat.Load().Match(weights, hint, s.opts)
	if best := res.Best(); best != nil && best.Folded {
		scanned = foldPadas(scanned, best.Definition)
	}

	var (
		breakdown []models.SyllableInfo
		patterns  []string
		counts    []int
	)
	for qi, sylls := range scanned {
		for pi, syl := range sylls {
			breakdown = append(breakdown, models.SyllableInfo{
				Syllable: syl.Surface,
				Weight:   syl.Weight.String(),
				Quarter:  qi + 1,
				Position: pi + 1,
			})
		}
		patterns = append(patterns, model.Pattern(sylls))
		counts = append(counts, len(sylls))
	}
	out := &models.Identification{
		Verdict:           string(res.Verdict),
		Detected:          res.Verdict != meter.Unidentified,
		SyllableBreakdown: breakdown,
		LaghuGuruPattern:  strings.Join(patterns, " "),
		GanaPattern:       ganaPatterns(patterns),
		SyllableCount:     counts,
		Explanation:       meter.Explain(&res, weights, s.opts),
		Source:            "algorithmic",
	}
	if best := res.Best(); best != nil {
		out.Confidence = best.Score
		if out.Detected {
			out.ChandasName = best.Definition.Name
		}
	}
	if !out.Detected {
		for _, c := range res.Nearest(3) {
			out.Nearest = append(out.Nearest, models.NearestCandidate{
				Name:  c.Definition.Name,
				Score: c.Score,
			})
		}
	}
	s.log.Debugf("identify: verdict=%s name=%q confidence=%.3f", out.Verdict, out.ChandasName, out.Confidence)
	return out, nil
}

// ListMeters returns the catalogue in priority order.
func (s *ChandasService) ListMeters() ([]models.MeterSummary, error) {
	defs := s.cat.Load().Definitions()
	out := make([]models.MeterSummary, len(defs))
	for i := range defs {
		out[i] = summarize(&defs[i])
	}
	return out, nil
}

func (s *ChandasService) GetMeter(name string) (*models.MeterSummary, error) {
	def, ok := s.cat.Load().Lookup(name)
	if !ok {
		return nil, storage.ErrMeterNotFound
	}
	sum := summarize(def)
	return &sum, nil
}

// MeterContext returns the symbolic background recorded for a meter.
func (s *ChandasService) MeterContext(name string) (*models.CulturalContext, error) {
	def, ok := s.cat.Load().Lookup(name)
	if !ok {
		return nil, storage.ErrMeterNotFound
	}
	if def.Info == nil {
		return nil, fmt.Errorf("no cultural context recorded for %q", def.Name)
	}
	return &models.CulturalContext{
		Name:         def.Name,
		Structure:    def.Info.Structure,
		Symbolism:    def.Info.Symbolism,
		Deity:        def.Info.Deity,
		Meaning:      def.Info.Meaning,
		Significance: def.Info.Significance,
	}, nil
}

// AddMeter validates and stores a user-defined meter, then swaps in a
// rebuilt catalogue.
func (s *ChandasService) AddMeter(def meter.Definition) (string, error) {
	id, err := s.db.RegisterMeter(def)
	if err != nil {
		return "", err
	}
	if err := s.reloadCatalogue(); err != nil {
		return "", err
	}
	s.log.Infof("meter %q registered", def.Name)
	return id, nil
}

func (s *ChandasService) DeleteMeter(name string) error {
	if err := s.db.DeleteMeterByName(name); err != nil {
		return err
	}
	if err := s.reloadCatalogue(); err != nil {
		return err
	}
	s.log.Infof("meter %q deleted", name)
	return nil
}

func (s *ChandasService) reloadCatalogue() error {
	cat, err := s.db.LoadCatalogue()
	if err != nil {
		return fmt.Errorf("reloading catalogue: %w", err)
	}
	s.cat.Store(cat)
	return nil
}

func summarize(def *meter.Definition) models.MeterSummary {
	return models.MeterSummary{
		Name:                def.Name,
		Aliases:             def.Aliases,
		Family:              string(def.Family),
		SyllablesPerQuarter: def.Length(),
		Pattern:             def.Pattern,
		EvenPattern:         def.EvenPattern,
		FreePositions:       def.FreePositions,
		GanaPattern:         meter.GanaPattern(def.Pattern),
	}
}

// foldPadas re-slices scanned quarters at pāda boundaries when the matcher
// folded a multi-pāda quarter, so the breakdown and counts report one entry
// per pāda rather than per daṇḍa-delimited half.
func foldPadas(scanned [][]model.Syllable, def *meter.Definition) [][]model.Syllable {
	var out [][]model.Syllable
	pada := 0
	for _, q := range scanned {
		lens, ok := def.PadaLengths(pada, len(q))
		if !ok || len(lens) < 2 {
			out = append(out, q)
			pada++
			continue
		}
		start := 0
		for _, n := range lens {
			out = append(out, q[start:start+n])
			start += n
			pada++
		}
	}
	return out
}

func ganaPatterns(patterns []string) string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = meter.GanaPattern(p)
	}
	return strings.Join(out, " / ")
}
