// Package datasettest provides footprint builders for tests.
package datasettest

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/danieljhkim/cleanslate/internal/dataset"
)

// Square returns a closed counter-clockwise square ring.
func Square(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}
}

// Building returns a footprint tagged building=yes with a square outline.
func Building(id int64, minX, minY, maxX, maxY float64) *dataset.Footprint {
	return &dataset.Footprint{
		ID:   id,
		Ring: Square(minX, minY, maxX, maxY),
		Tags: map[string]string{"building": "yes"},
	}
}

// WithTags returns fp after merging tags into its tag set.
func WithTags(fp *dataset.Footprint, tags map[string]string) *dataset.Footprint {
	for k, v := range tags {
		fp.Tags[k] = v
	}
	return fp
}

// New builds a dataset and fails the test on duplicate IDs.
func New(t testing.TB, footprints ...*dataset.Footprint) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(footprints...)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}
