// File: internal/report/compare.go
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rodaine/table"

	"github.com/dverbeek84/limelight-cli/internal/profile"
)

// Report is the two-sample comparison produced by `limelight compare`.
type Report struct {
	A Stats
	B Stats
}

// Compare builds a comparison report from two analyzed samples.
func Compare(a, b Stats) *Report {
	return &Report{A: a, B: b}
}

// WriteMarkdown renders the report with its two fixed sections, Gender and
// Age, one table per sample per section.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Comparison of Samples\n\n")

	b.WriteString("## Gender\n\n")
	for _, s := range []Stats{r.A, r.B} {
		fmt.Fprintf(&b, "### %s (total records: %d)\n\n", s.Label, s.Total)
		writeGenderTable(&b, s)
		b.WriteString("\n")
	}

	b.WriteString("## Age\n\n")
	for _, s := range []Stats{r.A, r.B} {
		n := 0
		if s.Age != nil {
			n = s.Age.Count
		}
		fmt.Fprintf(&b, "### %s (n with age: %d)\n\n", s.Label, n)
		writeAgeTable(&b, s)
		b.WriteString("\n")
	}

	b.WriteString("## Notes\n\n")
	b.WriteString("- Gender is inferred from page content and normalized to 'male', 'female', or 'unknown'.\n")
	b.WriteString("- Records without a parseable age were excluded from the age statistics.\n")
	b.WriteString("- The standard deviation is the sample standard deviation; it is omitted for fewer than two age values.\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGenderTable(b *strings.Builder, s Stats) {
	b.WriteString("| Gender | Count | Percent |\n")
	b.WriteString("|---:|---:|---:|\n")
	for _, g := range GenderCategories {
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", titleCase(g), s.Gender[g], s.GenderPercent(g))
	}
}

func writeAgeTable(b *strings.Builder, s Stats) {
	if s.Age == nil {
		b.WriteString("No age data available in this sample.\n")
		return
	}
	a := s.Age
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|---|---:|\n")
	fmt.Fprintf(b, "| Records with age | %d |\n", a.Count)
	fmt.Fprintf(b, "| Mean age | %.2f |\n", a.Mean)
	fmt.Fprintf(b, "| Median age | %s |\n", formatMedian(a.Median))
	if a.HasStdev {
		fmt.Fprintf(b, "| Age stdev | %.2f |\n", a.Stdev)
	}
	fmt.Fprintf(b, "| Min age | %d |\n", a.Min)
	fmt.Fprintf(b, "| Max age | %d |\n", a.Max)
}

// RenderConsole prints the same comparison as terminal tables.
func (r *Report) RenderConsole(w io.Writer) {
	fmt.Fprintln(w, "Gender distribution")
	genderTbl := table.New("Category", r.A.Label, r.B.Label).WithWriter(w)
	for _, g := range GenderCategories {
		genderTbl.AddRow(
			titleCase(g),
			fmt.Sprintf("%d (%.1f%%)", r.A.Gender[g], r.A.GenderPercent(g)),
			fmt.Sprintf("%d (%.1f%%)", r.B.Gender[g], r.B.GenderPercent(g)),
		)
	}
	genderTbl.AddRow("Total", fmt.Sprintf("%d", r.A.Total), fmt.Sprintf("%d", r.B.Total))
	genderTbl.Print()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Age summary")
	ageTbl := table.New("Metric", r.A.Label, r.B.Label).WithWriter(w)
	ageTbl.AddRow("n", ageCell(r.A.Age, func(a *AgeStats) string { return fmt.Sprintf("%d", a.Count) }),
		ageCell(r.B.Age, func(a *AgeStats) string { return fmt.Sprintf("%d", a.Count) }))
	ageTbl.AddRow("mean", ageCell(r.A.Age, func(a *AgeStats) string { return fmt.Sprintf("%.2f", a.Mean) }),
		ageCell(r.B.Age, func(a *AgeStats) string { return fmt.Sprintf("%.2f", a.Mean) }))
	ageTbl.AddRow("median", ageCell(r.A.Age, func(a *AgeStats) string { return formatMedian(a.Median) }),
		ageCell(r.B.Age, func(a *AgeStats) string { return formatMedian(a.Median) }))
	ageTbl.AddRow("stdev", ageCell(r.A.Age, formatStdev), ageCell(r.B.Age, formatStdev))
	ageTbl.AddRow("min", ageCell(r.A.Age, func(a *AgeStats) string { return fmt.Sprintf("%d", a.Min) }),
		ageCell(r.B.Age, func(a *AgeStats) string { return fmt.Sprintf("%d", a.Min) }))
	ageTbl.AddRow("max", ageCell(r.A.Age, func(a *AgeStats) string { return fmt.Sprintf("%d", a.Max) }),
		ageCell(r.B.Age, func(a *AgeStats) string { return fmt.Sprintf("%d", a.Max) }))
	ageTbl.Print()
}

func ageCell(a *AgeStats, format func(*AgeStats) string) string {
	if a == nil {
		return "-"
	}
	return format(a)
}

func formatStdev(a *AgeStats) string {
	if !a.HasStdev {
		return "-"
	}
	return fmt.Sprintf("%.2f", a.Stdev)
}

// formatMedian renders integral medians as integers and half values with one
// decimal.
func formatMedian(m float64) string {
	if m == float64(int(m)) {
		return fmt.Sprintf("%d", int(m))
	}
	return fmt.Sprintf("%.1f", m)
}

func titleCase(g profile.Gender) string {
	s := string(g)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
