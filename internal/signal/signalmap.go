package signal

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/matsen/weaksig/internal/score"
	"github.com/matsen/weaksig/internal/table"
)

// Entry is one keyword's position on a signal map.
type Entry struct {
	Keyword  string
	X        float64 // arithmetic mean of the raw counts over the period
	Y        float64 // geometric mean of the weighted scores over the period
	Category Category
}

// PeriodMap is the signal map of one analysis period.
type PeriodMap struct {
	Period  Period
	MedianX float64
	MedianY float64
	Entries []Entry // keyword order
}

// Entry returns the entry for a keyword, if present.
func (m *PeriodMap) Entry(keyword string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Keyword == keyword {
			return e, true
		}
	}
	return Entry{}, false
}

// BuildMap builds the signal map for one period from an x-source table
// (TF or DF) and a y-source table (DoV or DoD).
//
// Keywords with x <= 0 or y <= epsilon have no real presence in the period
// and are dropped before the medians are taken; the medians are local to the
// period's survivors. A period with no survivors returns (nil, nil) so the
// caller can skip it.
func BuildMap(x, y *table.Table, p Period) (*PeriodMap, error) {
	if err := x.AlignYears(y); err != nil {
		return nil, fmt.Errorf("period %s: %w", p.Name, err)
	}
	years := p.Years()
	for _, yr := range years {
		if !x.HasYear(yr) {
			return nil, fmt.Errorf("period %s: %w: year %d not in table", p.Name, table.ErrYearMisalignment, yr)
		}
	}

	var entries []Entry
	vals := make([]float64, len(years))
	for _, k := range x.Keywords() {
		xRow, err := x.RowSlice(k, years)
		if err != nil {
			return nil, err
		}
		yRow, err := y.RowSlice(k, years)
		if err != nil {
			return nil, err
		}

		avgX := score.Mean(xRow)
		for i, v := range yRow {
			vals[i] = v + score.Epsilon
		}
		growthY := score.GeoMean(vals)

		if avgX <= 0 || growthY <= score.Epsilon {
			continue
		}
		entries = append(entries, Entry{Keyword: k, X: avgX, Y: growthY})
	}

	if len(entries) == 0 {
		return nil, nil
	}

	xs := make([]float64, len(entries))
	ys := make([]float64, len(entries))
	for i, e := range entries {
		xs[i] = e.X
		ys[i] = e.Y
	}
	medianX := median(xs)
	medianY := median(ys)

	for i := range entries {
		entries[i].Category = Classify(entries[i].X, medianX, entries[i].Y, medianY)
	}

	return &PeriodMap{
		Period:  p,
		MedianX: medianX,
		MedianY: medianY,
		Entries: entries,
	}, nil
}

// BuildMaps builds the signal maps for every period, skipping periods with
// no surviving keywords.
func BuildMaps(x, y *table.Table, periods []Period) ([]*PeriodMap, error) {
	maps := make([]*PeriodMap, 0, len(periods))
	for _, p := range periods {
		m, err := BuildMap(x, y, p)
		if err != nil {
			return nil, err
		}
		if m == nil {
			log.Warn().Str("period", p.Label()).Msg("no keywords present, skipping period")
			continue
		}
		log.Info().Str("period", p.Label()).Int("keywords", len(m.Entries)).Msg("signal map built")
		maps = append(maps, m)
	}
	return maps, nil
}

// median returns the middle value of the sample (average of the two middle
// values for an even count).
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
