package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tuneinsight/lattigo-masking/masking/leakage"
)

func toBarItems(counts []uint64) []opts.BarData {
	out := make([]opts.BarData, len(counts))
	for i, c := range counts {
		out[i] = opts.BarData{Value: c}
	}
	return out
}

func newHistogramChart(params string, h leakage.Histogram) *charts.Bar {

	labels := make([]string, len(h.Lower))
	for i, l := range h.Lower {
		labels[i] = fmt.Sprintf("%d", l)
	}

	var n uint64
	for _, c := range h.Counts {
		n += c
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    h.Name,
			Subtitle: fmt.Sprintf("%s, n=%d, mean=%.3f, std=%.3f", params, n, h.Mean, h.StdDev),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("count", toBarItems(h.Counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))

	return bar
}

// renderHistograms renders the histograms of the report as an HTML page on w.
func renderHistograms(r *leakage.Report, w io.Writer) error {

	params := fmt.Sprintf("q=%d N=%d d=%d", r.Parameters.Q, r.Parameters.N, r.Parameters.Order)

	page := components.NewPage().SetPageTitle("maskassess " + params)
	for _, h := range r.Histograms {
		page.AddCharts(newHistogramChart(params, h))
	}

	return page.Render(w)
}
