package coaching

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxHistory caps how many past records are summarized.
const MaxHistory = 5

// maxImprovementAreas caps the improvement labels listed per record.
const maxImprovementAreas = 3

// BuildContext renders the personalization block for a comparison prompt.
// Only the last MaxHistory records are summarized, in their given order.
// It returns "" when there is no history and no populated profile key.
func BuildContext(records []PerformanceRecord, profile UserProfile) string {
	var b strings.Builder

	if len(records) > 0 {
		b.WriteString("\n\nPAST PERFORMANCE CONTEXT:\n")
		fmt.Fprintf(&b, "The user has completed %d previous yodeling analysis(es). Here's their performance history:\n\n", len(records))

		recent := records
		if len(recent) > MaxHistory {
			recent = recent[len(recent)-MaxHistory:]
		}
		for i, rec := range recent {
			writeRecord(&b, i+1, rec)
		}
	}

	if lines := profileLines(profile); len(lines) > 0 {
		b.WriteString("\nUSER INFORMATION:\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeRecord(b *strings.Builder, n int, rec PerformanceRecord) {
	fmt.Fprintf(b, "Performance #%d:\n", n)

	switch {
	case rec.Opaque():
	case rec.Comparison != nil:
		comp := rec.Comparison
		if comp.OverallScore != nil {
			fmt.Fprintf(b, "  - Overall Score: %s/100\n", formatScore(comp.OverallScore))
		}
		if m := comp.Metrics; m != nil {
			fmt.Fprintf(b, "  - Pitch Accuracy: %s/100\n", metricScore(m.PitchAccuracy))
			fmt.Fprintf(b, "  - Timing Accuracy: %s/100\n", metricScore(m.TimingAccuracy))
			fmt.Fprintf(b, "  - Yodel Break Quality: %s/100\n", metricScore(m.YodelBreakQuality))
		}
		if fb := comp.Feedback; fb != nil && len(fb.AreasForImprovement) > 0 {
			areas := fb.AreasForImprovement
			if len(areas) > maxImprovementAreas {
				areas = areas[:maxImprovementAreas]
			}
			labels := make([]string, len(areas))
			for i, a := range areas {
				labels[i] = a.Area
			}
			fmt.Fprintf(b, "  - Previous areas for improvement: %s\n", strings.Join(labels, ", "))
		}
	case rec.OverallScore != nil:
		fmt.Fprintf(b, "  - Overall Score: %s/100\n", formatScore(rec.OverallScore))
	}

	b.WriteString("\n")
}

func profileLines(profile UserProfile) []string {
	if len(profile) == 0 {
		return nil
	}
	var lines []string
	for _, f := range profileFields {
		v, ok := profile[f.key]
		if !ok || v == nil {
			continue
		}
		text := strings.TrimSpace(fmt.Sprint(v))
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", f.label, text))
	}
	return lines
}

func metricScore(m *MetricScore) string {
	if m == nil {
		return "N/A"
	}
	return formatScore(m.Score)
}

func formatScore(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
