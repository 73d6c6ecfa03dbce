package reports

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/centbook/centbook-backend/internal/money"
)

// renderCategoryPie draws spending shares as a PNG. go-chart refuses an empty
// pie, so no positive spend at all surfaces as ErrNoData.
func renderCategoryPie(totals []CategoryTotal) ([]byte, error) {
	var overall int64
	for _, ct := range totals {
		if ct.Total > 0 {
			overall += ct.Total
		}
	}
	if overall == 0 {
		return nil, ErrNoData
	}

	values := make([]chart.Value, 0, len(totals))
	for _, ct := range totals {
		if ct.Total <= 0 {
			continue
		}
		share := float64(ct.Total) / float64(overall) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", ct.Category, money.Format(ct.Total), share),
			Value: float64(ct.Total),
		})
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
