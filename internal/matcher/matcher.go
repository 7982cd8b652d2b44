package matcher

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/geom"
	"github.com/danieljhkim/cleanslate/internal/logging"
)

// Scorer scores how well a new footprint overlaps an old one.
type Scorer interface {
	Score(n, o *dataset.Footprint) geom.Score
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(n, o *dataset.Footprint) geom.Score

// Score calls f(n, o).
func (f ScorerFunc) Score(n, o *dataset.Footprint) geom.Score {
	return f(n, o)
}

// EstimatorScorer scores footprints with a geom.Estimator.
type EstimatorScorer struct {
	Estimator *geom.Estimator
}

// Score returns the combined overlap of the two rings.
func (s EstimatorScorer) Score(n, o *dataset.Footprint) geom.Score {
	return s.Estimator.Combined(n.Ring, o.Ring)
}

// Config holds matcher settings.
type Config struct {
	// AcceptThreshold is the score a pair must strictly exceed to match.
	AcceptThreshold float64
}

// DefaultConfig returns the default matcher settings.
func DefaultConfig() Config {
	return Config{AcceptThreshold: 0.5}
}

// Validate checks the threshold is within [0,1].
func (c Config) Validate() error {
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 1 || math.IsNaN(c.AcceptThreshold) {
		return fmt.Errorf("accept threshold must be within [0,1], got %v", c.AcceptThreshold)
	}
	return nil
}

// Match is an accepted pairing.
type Match struct {
	New   *dataset.Footprint
	Old   *dataset.Footprint
	Score float64
}

// Conflict is a new footprint whose qualifying old footprint was already
// claimed by an earlier match.
type Conflict struct {
	New *dataset.Footprint
	Old *dataset.Footprint

	// ClaimedBy is the ID of the new footprint that holds Old.
	ClaimedBy int64

	Score float64
}

// Failure records a pair whose score could not be computed and was treated
// as 0.
type Failure struct {
	NewID int64
	OldID int64
	Kind  geom.FailureKind
}

// Result is the outcome of one matching pass.
type Result struct {
	Matches   []Match
	Conflicts []Conflict
	Unmatched []*dataset.Footprint
	Failures  []Failure
}

// Matcher runs the greedy pass.
type Matcher struct {
	scorer Scorer
	cfg    Config
}

// New creates a Matcher.
func New(scorer Scorer, cfg Config) *Matcher {
	return &Matcher{scorer: scorer, cfg: cfg}
}

type candidate struct {
	fp    *dataset.Footprint
	bound orb.Bound
}

type best struct {
	cand  *candidate
	score float64
}

// Match pairs news with olds. Both slices are used in the order given and
// are expected to be pre-filtered to closed, undeleted building footprints.
func (m *Matcher) Match(ctx context.Context, news, olds []*dataset.Footprint) *Result {
	log := logging.FromContext(ctx)
	result := &Result{}

	candidates := make([]candidate, len(olds))
	for i, o := range olds {
		candidates[i] = candidate{fp: o, bound: o.Bound()}
	}

	// claimed maps old footprint IDs to the new footprint that took them.
	claimed := make(map[int64]int64, len(olds))

	for _, n := range news {
		nb := n.Bound()

		var free, taken best
		for i := range candidates {
			c := &candidates[i]
			if !nb.Intersects(c.bound) {
				continue
			}

			score := m.score(log, result, n, c.fp)
			if score <= m.cfg.AcceptThreshold {
				continue
			}

			if _, ok := claimed[c.fp.ID]; ok {
				if taken.cand == nil || score > taken.score {
					taken = best{cand: c, score: score}
				}
				continue
			}
			if free.cand == nil || score > free.score {
				free = best{cand: c, score: score}
			}
		}

		switch {
		case free.cand != nil:
			claimed[free.cand.fp.ID] = n.ID
			result.Matches = append(result.Matches, Match{New: n, Old: free.cand.fp, Score: free.score})
			log.Debug().
				Int64("new_id", n.ID).
				Int64("old_id", free.cand.fp.ID).
				Float64("score", free.score).
				Msg("accepted match")
		case taken.cand != nil:
			holder := claimed[taken.cand.fp.ID]
			result.Conflicts = append(result.Conflicts, Conflict{
				New:       n,
				Old:       taken.cand.fp,
				ClaimedBy: holder,
				Score:     taken.score,
			})
			log.Debug().
				Int64("new_id", n.ID).
				Int64("old_id", taken.cand.fp.ID).
				Int64("claimed_by", holder).
				Msg("old footprint already claimed")
		default:
			result.Unmatched = append(result.Unmatched, n)
		}
	}

	return result
}

// score folds geometry failures to 0 and records them.
func (m *Matcher) score(log *zerolog.Logger, result *Result, n, o *dataset.Footprint) float64 {
	s := m.scorer.Score(n, o)
	if !s.OK() {
		result.Failures = append(result.Failures, Failure{NewID: n.ID, OldID: o.ID, Kind: s.Failure})
		log.Debug().
			Int64("new_id", n.ID).
			Int64("old_id", o.ID).
			Stringer("failure", s.Failure).
			Msg("overlap not computable, scoring 0")
	}
	return s.OrZero()
}
