package report

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/phpdave11/gofpdf"

	"fintrack/internal/core"
)

// ErrNoChartData is returned when the period holds nothing to plot.
var ErrNoChartData = errors.New("no data to chart")

var slicePalette = [][3]int{
	{66, 133, 244},
	{219, 68, 55},
	{244, 180, 0},
	{15, 157, 88},
	{171, 71, 188},
	{255, 112, 67},
	{0, 172, 193},
}

// RenderChart draws two side-by-side pie breakdowns (expenses, income)
// into a single-page PDF. Each slice is labeled with its category, its
// percentage of its own half, and the absolute amount.
func (r *Renderer) RenderChart(summary core.PeriodSummary, period core.Period) ([]byte, error) {
	if summary.Empty() {
		return nil, ErrNoChartData
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Fintrack Statistics", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Statistics for %s", period.Title()), "", 1, "C", false, 0, "")

	r.drawPie(pdf, "Expenses", summary.ExpensesByCategory, summary.TotalExpenses, 77, 110)
	r.drawPie(pdf, "Income", summary.IncomeByCategory, summary.TotalIncome, 220, 110)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render chart pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPie(pdf *gofpdf.Fpdf, caption string, byCategory map[string]core.Money, total core.Money, cx, cy float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(cx-pdf.GetStringWidth(caption)/2, cy-62, caption)

	if len(byCategory) == 0 || total.Cents == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(cx-pdf.GetStringWidth("no data")/2, cy, "no data")
		return
	}

	const radius = 42.0
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(0.3)

	angle := 90.0 // start at twelve o'clock like the usual pie layout
	for i, category := range sortedCategories(byCategory) {
		amount := byCategory[category]
		share := float64(amount.Cents) / float64(total.Cents)
		sweep := share * 360.0

		color := slicePalette[i%len(slicePalette)]
		pdf.SetFillColor(color[0], color[1], color[2])

		start, end := angle-sweep, angle
		pdf.MoveTo(cx, cy)
		pdf.LineTo(cx+radius*cosDeg(start), cy-radius*sinDeg(start))
		pdf.ArcTo(cx, cy, radius, radius, 0, start, end)
		pdf.ClosePath()
		pdf.DrawPath("FD")

		mid := angle - sweep/2
		label := fmt.Sprintf("%s %.1f%% (%s)", category, share*100, r.money(amount))
		r.placeLabel(pdf, label, cx, cy, radius+4, mid)

		angle -= sweep
	}
}

func (r *Renderer) placeLabel(pdf *gofpdf.Fpdf, label string, cx, cy, dist, angleDeg float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(40, 40, 40)

	x := cx + dist*cosDeg(angleDeg)
	y := cy - dist*sinDeg(angleDeg)
	// Labels on the left half anchor at their right edge so text grows
	// away from the pie.
	if cosDeg(angleDeg) < 0 {
		x -= pdf.GetStringWidth(label)
	}
	pdf.Text(x, y, label)
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
