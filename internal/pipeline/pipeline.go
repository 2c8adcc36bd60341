// Package pipeline orchestrates detection and anonymization over a batch
// of input strings: one ResultRecord per input, order preserved, each
// input processed in isolation.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/digimosa/pii-redact/internal/anonymizer"
	"github.com/digimosa/pii-redact/internal/config"
	"github.com/digimosa/pii-redact/internal/detectors"
	"github.com/digimosa/pii-redact/internal/models"
	"github.com/digimosa/pii-redact/internal/ner"
	"github.com/digimosa/pii-redact/internal/resolver"
	"github.com/digimosa/pii-redact/internal/whitelist"
)

// ErrResourceUnavailable is returned when the shared detection resources
// are missing. It is the only fatal condition: everything else degrades
// per item.
var ErrResourceUnavailable = errors.New("pipeline: detection resources unavailable")

// Pipeline holds the process-wide, read-only detection resources. It is
// safe for concurrent use; no invocation mutates shared state.
type Pipeline struct {
	cfg        *config.Config
	detectors  []detectors.Detector
	recognizer ner.Recognizer
	resolver   *resolver.Resolver
	anonymizer *anonymizer.Anonymizer
}

// New builds a pipeline. recognizer must be non-nil; wl may be nil.
func New(cfg *config.Config, recognizer ner.Recognizer, wl *whitelist.Whitelist) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if recognizer == nil {
		return nil, fmt.Errorf("%w: no recognizer configured", ErrResourceUnavailable)
	}
	return &Pipeline{
		cfg:        cfg,
		detectors:  detectors.DefaultSet(),
		recognizer: recognizer,
		resolver:   resolver.New(cfg, wl),
		anonymizer: anonymizer.New(cfg.ConsistentPseudonymization),
	}, nil
}

// ProcessBatch runs detection and anonymization for every input string.
// The result has the same length and order as texts. Failures while
// scanning a single item degrade that item to a fail-safe record (no
// detections, text unchanged); only missing resources abort the batch.
func (p *Pipeline) ProcessBatch(texts []string) ([]models.ResultRecord, error) {
	if p == nil || p.recognizer == nil {
		return nil, ErrResourceUnavailable
	}

	results := make([]models.ResultRecord, len(texts))

	if p.cfg.Workers > 1 && len(texts) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, p.cfg.Workers)
		for i, text := range texts {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, text string) {
				defer wg.Done()
				defer func() { <-sem }()
				results[i] = p.processOne(text)
			}(i, text)
		}
		wg.Wait()
	} else {
		for i, text := range texts {
			results[i] = p.processOne(text)
		}
	}

	return results, nil
}

// processOne handles a single input. Panics and recognizer errors are
// contained here: the item degrades to its unmodified text rather than
// surfacing a partially rewritten output.
func (p *Pipeline) processOne(text string) (rec models.ResultRecord) {
	rec = models.ResultRecord{
		Detections:     []models.Detection{},
		AnonymizedText: text,
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("item processing failed", "panic", r)
			rec = models.ResultRecord{
				Detections:     []models.Detection{},
				AnonymizedText: text,
			}
		}
	}()

	if text == "" {
		return rec
	}

	unit := models.NewTextUnit(text)

	var candidates []models.Candidate
	for _, d := range p.detectors {
		candidates = append(candidates, d.Scan(unit)...)
	}

	modelCandidates, err := p.recognizer.Recognize(unit)
	if err != nil {
		// Recoverable per contract: the item is reported untouched.
		slog.Warn("recognizer failed for item", "error", err)
		return rec
	}
	candidates = append(candidates, modelCandidates...)

	resolved := p.resolver.Resolve(unit, candidates)
	detections, anonymized := p.anonymizer.Apply(unit, resolved)

	rec.HasPII = len(detections) > 0
	rec.Detections = detections
	rec.AnonymizedText = anonymized
	return rec
}
