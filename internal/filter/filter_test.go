package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/dataset/datasettest"
	"github.com/danieljhkim/cleanslate/internal/filter"
	"github.com/danieljhkim/cleanslate/internal/logging"
)

func TestCompile(t *testing.T) {
	house := datasettest.WithTags(datasettest.Building(5, 0, 0, 1, 1), map[string]string{"building": "house"})
	traced := datasettest.Building(-3, 0, 0, 1, 1)
	road := &dataset.Footprint{ID: 8, Tags: map[string]string{"highway": "service"}}

	tests := []struct {
		text string
		want map[int64]bool
	}{
		{"id:1-", map[int64]bool{5: true, -3: false, 8: true}},
		{"id:-5--1", map[int64]bool{5: false, -3: true, 8: false}},
		{"id:-0", map[int64]bool{5: false, -3: true, 8: false}},
		{"id:-3", map[int64]bool{5: false, -3: true, 8: false}},
		{"id:-4", map[int64]bool{5: false, -3: false, 8: false}},
		{"id:-3--3", map[int64]bool{5: false, -3: true, 8: false}},
		{"id:6-10", map[int64]bool{5: false, -3: false, 8: true}},
		{"id:5", map[int64]bool{5: true, -3: false, 8: false}},
		{"building", map[int64]bool{5: true, -3: true, 8: false}},
		{"building=house", map[int64]bool{5: true, -3: false, 8: false}},
		{"-building", map[int64]bool{5: false, -3: false, 8: true}},
		{"building id:1-", map[int64]bool{5: true, -3: false, 8: false}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			expr, err := filter.Compile(tt.text)
			require.NoError(t, err)
			for _, fp := range []*dataset.Footprint{house, traced, road} {
				assert.Equal(t, tt.want[fp.ID], expr(fp), "footprint %d", fp.ID)
			}
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	for _, text := range []string{"", "   ", "id:", "id:x", "id:9-2", "type:way", "=yes"} {
		t.Run(text, func(t *testing.T) {
			_, err := filter.Compile(text)
			assert.ErrorIs(t, err, filter.ErrInvalidExpression)
		})
	}
}

func TestModel_Visible(t *testing.T) {
	m, err := filter.NewModel(filter.Filter{Text: filter.CleanSlateText, Enabled: true, Hiding: true})
	require.NoError(t, err)

	old := datasettest.Building(10, 0, 0, 1, 1)
	traced := datasettest.Building(-1, 0, 0, 1, 1)

	assert.False(t, m.Visible(old))
	assert.True(t, m.Visible(traced))

	require.NoError(t, m.SetEnabled(filter.CleanSlateText, false))
	assert.True(t, m.Visible(old))

	require.NoError(t, m.Update(filter.Filter{Text: filter.CleanSlateText, Enabled: true, Hiding: false}))
	assert.True(t, m.Visible(old), "non-hiding filters leave footprints visible")

	require.NoError(t, m.Update(filter.Filter{Text: filter.CleanSlateText, Enabled: true, Hiding: true, Inverted: true}))
	assert.True(t, m.Visible(old))
	assert.False(t, m.Visible(traced))
}

func TestModel_Errors(t *testing.T) {
	m, err := filter.NewModel()
	require.NoError(t, err)

	assert.ErrorIs(t, m.SetEnabled("id:1-", true), filter.ErrNoFilter)
	assert.ErrorIs(t, m.Update(filter.Filter{Text: "id:1-"}), filter.ErrNoFilter)

	require.NoError(t, m.Add(filter.Filter{Text: "id:1-"}))
	assert.ErrorIs(t, m.Add(filter.Filter{Text: "id:1-"}), filter.ErrDuplicateFilter)
	assert.ErrorIs(t, m.Add(filter.Filter{Text: "id:"}), filter.ErrInvalidExpression)
	assert.Len(t, m.Filters(), 1)
}

func TestModel_Hidden(t *testing.T) {
	m, err := filter.NewModel(filter.Filter{Text: filter.CleanSlateText, Enabled: true, Hiding: true})
	require.NoError(t, err)
	ds := datasettest.New(t,
		datasettest.Building(1, 0, 0, 1, 1),
		datasettest.Building(2, 0, 0, 1, 1),
		datasettest.Building(-1, 0, 0, 1, 1),
	)
	assert.Equal(t, 2, m.Hidden(ds))
}

func TestModelContext(t *testing.T) {
	m, err := filter.NewModel(filter.Filter{Text: filter.CleanSlateText, Enabled: true, Hiding: true})
	require.NoError(t, err)
	ctx := filter.NewContext(m, filter.CleanSlateText)

	enabled, err := ctx.Enabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, ctx.SetEnabled(false))
	assert.True(t, ctx.Visible(datasettest.Building(3, 0, 0, 1, 1)))

	missing := filter.NewContext(m, "building")
	_, err = missing.Enabled()
	assert.ErrorIs(t, err, filter.ErrNoFilter)
	assert.ErrorIs(t, missing.SetEnabled(true), filter.ErrNoFilter)
}

func TestAutoHide(t *testing.T) {
	t.Run("ignores empty dataset", func(t *testing.T) {
		m, _ := filter.NewModel()
		hide := filter.NewAutoHide(m, filter.CleanSlateText, &logging.Nop)

		hide.DatasetAdded(datasettest.New(t))
		_, ok := m.Find(filter.CleanSlateText)
		assert.False(t, ok)
	})

	t.Run("creates missing filter", func(t *testing.T) {
		m, _ := filter.NewModel()
		hide := filter.NewAutoHide(m, filter.CleanSlateText, &logging.Nop)

		hide.DatasetAdded(datasettest.New(t, datasettest.Building(1, 0, 0, 1, 1)))
		f, ok := m.Find(filter.CleanSlateText)
		require.True(t, ok)
		assert.Equal(t, filter.Filter{Text: filter.CleanSlateText, Enabled: true, Hiding: true}, f)
	})

	t.Run("re-enables disabled filter on change", func(t *testing.T) {
		m, _ := filter.NewModel(filter.Filter{Text: filter.CleanSlateText})
		hide := filter.NewAutoHide(m, filter.CleanSlateText, &logging.Nop)

		var n dataset.Notifier
		n.Subscribe(hide)
		n.NotifyChanged(datasettest.New(t, datasettest.Building(-1, 0, 0, 1, 1)))

		f, _ := m.Find(filter.CleanSlateText)
		assert.True(t, f.Enabled)
		assert.True(t, f.Hiding)
		assert.Len(t, m.Filters(), 1)
	})
}
