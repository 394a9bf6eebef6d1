package main

import (
	"fmt"
	"strings"

	"github.com/russross/blackfriday/v2"
	"github.com/shopspring/decimal"
)

// renderSweepReport builds a markdown summary of one sweep run: one row
// per enumerated point, columns sorted for determinism.
func renderSweepReport(source string, points []map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sweep report: %s\n\n", source)
	fmt.Fprintf(&b, "%d config point(s) enumerated.\n\n", len(points))

	cols := sortedFieldNames(points)
	if len(cols) == 0 {
		return b.String()
	}

	b.WriteString("| # |")
	for _, col := range cols {
		fmt.Fprintf(&b, " %s |", col)
	}
	b.WriteString("\n|---|")
	for range cols {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for i, p := range points {
		fmt.Fprintf(&b, "| %d |", i)
		for _, col := range cols {
			fmt.Fprintf(&b, " %v |", p[col])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderSweepReportHTML renders the markdown report to HTML.
func renderSweepReportHTML(source string, points []map[string]any) []byte {
	return blackfriday.Run([]byte(renderSweepReport(source, points)))
}

func sortedFieldNames(points []map[string]any) []string {
	seen := map[string]bool{}
	var cols []string
	for _, p := range points {
		for k := range p {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && cols[j-1] > cols[j]; j-- {
			cols[j-1], cols[j] = cols[j], cols[j-1]
		}
	}
	return cols
}

// summarizeNumericField sums and averages a binding's value across every
// enumerated point using decimal.Decimal rather than float64, so a long
// sweep doesn't accumulate floating-point rounding error in the total.
func summarizeNumericField(points []map[string]any, field string) (string, error) {
	total := decimal.Zero
	count := 0
	for i, p := range points {
		v, ok := p[field]
		if !ok {
			continue
		}
		d, err := toDecimal(v)
		if err != nil {
			return "", fmt.Errorf("point %d: field %q: %w", i, field, err)
		}
		total = total.Add(d)
		count++
	}
	if count == 0 {
		return fmt.Sprintf("%s: no numeric points found", field), nil
	}
	mean := total.DivRound(decimal.NewFromInt(int64(count)), 10)
	return fmt.Sprintf("%s: sum=%s mean=%s across %d point(s)", field, total.String(), mean.String(), count), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case bool:
		if x {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("value %v is not numeric", v)
	}
}
