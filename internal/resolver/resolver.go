// Package resolver collapses overlapping candidates from all detectors
// into the final non-overlapping, start-ordered detection sequence.
package resolver

import (
	"sort"

	"github.com/digimosa/pii-redact/internal/config"
	"github.com/digimosa/pii-redact/internal/models"
	"github.com/digimosa/pii-redact/internal/whitelist"
)

type Resolver struct {
	cfg *config.Config
	wl  *whitelist.Whitelist
}

// New creates a resolver. wl may be nil when no whitelist is configured.
func New(cfg *config.Config, wl *whitelist.Whitelist) *Resolver {
	return &Resolver{cfg: cfg, wl: wl}
}

// Resolve filters candidates below their category threshold, drops
// whitelisted values, then selects a maximal non-overlapping set by
// preference: higher confidence first, then checksum-validated pattern
// evidence over statistical evidence, then the longer span, then the
// lexicographically earlier category name. The result is sorted by start
// and is a deterministic function of the candidate set alone.
func (r *Resolver) Resolve(u *models.TextUnit, candidates []models.Candidate) []models.Candidate {
	eligible := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Start < 0 || c.End > u.Len() || c.Start >= c.End {
			continue
		}
		if c.Confidence < r.cfg.Threshold(c.Category) {
			continue
		}
		if r.wl != nil && r.wl.Contains(u.Slice(c.Start, c.End)) {
			continue
		}
		eligible = append(eligible, c)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return prefer(eligible[i], eligible[j])
	})

	var accepted []models.Candidate
	for _, c := range eligible {
		if overlapsAny(accepted, c) {
			continue
		}
		accepted = append(accepted, c)
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

// prefer orders candidates by acceptance priority.
func prefer(a, b models.Candidate) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	av, bv := a.Validated() && a.Source == models.SourcePattern,
		b.Validated() && b.Source == models.SourcePattern
	if av != bv {
		return av
	}
	al, bl := a.End-a.Start, b.End-b.Start
	if al != bl {
		return al > bl
	}
	return a.Category < b.Category
}

func overlapsAny(accepted []models.Candidate, c models.Candidate) bool {
	for _, a := range accepted {
		if c.Start < a.End && a.Start < c.End {
			return true
		}
	}
	return false
}
