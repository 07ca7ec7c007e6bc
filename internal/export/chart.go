package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/BrickFill/internal/model"
)

// StatsChart builds a line chart of the five per-generation statistics.
func StatsChart(result model.RunResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "BrickFill " + result.ShortID()}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Covered area per generation",
			Subtitle: fmt.Sprintf("%d x %d surface, run %s", result.Width, result.Height, result.ShortID()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Generation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cells", Max: result.TotalArea()}),
	)

	xs := make([]string, len(result.Stats))
	sum := make([]opts.LineData, len(result.Stats))
	avg := make([]opts.LineData, len(result.Stats))
	median := make([]opts.LineData, len(result.Stats))
	best := make([]opts.LineData, len(result.Stats))
	worst := make([]opts.LineData, len(result.Stats))
	for i, st := range result.Stats {
		xs[i] = strconv.Itoa(st.Generation)
		sum[i] = opts.LineData{Value: st.Sum}
		avg[i] = opts.LineData{Value: st.Average}
		median[i] = opts.LineData{Value: st.Median}
		best[i] = opts.LineData{Value: st.Max}
		worst[i] = opts.LineData{Value: st.Min}
	}

	// Sum runs on a much larger scale than the other series, so it starts
	// hidden behind its legend entry.
	line.SetXAxis(xs).
		AddSeries("Max", best).
		AddSeries("Average", avg).
		AddSeries("Median", median).
		AddSeries("Min", worst).
		AddSeries("Sum", sum)
	line.SetGlobalOptions(charts.WithLegendOpts(opts.Legend{
		Show:     opts.Bool(true),
		Top:      "bottom",
		Selected: map[string]bool{"Sum": false},
	}))
	return line
}

// RenderStatsChart writes the statistics chart as a standalone HTML page.
func RenderStatsChart(w io.Writer, result model.RunResult) error {
	if err := checkResult(result); err != nil {
		return err
	}
	return StatsChart(result).Render(w)
}

// ExportStatsChart writes the statistics chart to an HTML file.
func ExportStatsChart(path string, result model.RunResult) error {
	if err := checkResult(result); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := StatsChart(result).Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
