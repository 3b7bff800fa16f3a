package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/blackwell-systems/codegauge/internal/analyzer"
	"github.com/blackwell-systems/codegauge/internal/estimate"
	"github.com/blackwell-systems/codegauge/internal/operations"
	"github.com/blackwell-systems/codegauge/internal/output"
)

// Report sections, mirroring the tabs of an analysis view.
const (
	sectionOverview   = "overview"
	sectionQuality    = "quality"
	sectionSecurity   = "security"
	sectionOperations = "operations"
	sectionAll        = "all"
)

func validSection(s string) bool {
	switch s {
	case sectionOverview, sectionQuality, sectionSecurity, sectionOperations, sectionAll:
		return true
	}
	return false
}

func renderReport(w io.Writer, rep analysisReport, section string) {
	show := func(s string) bool { return section == sectionAll || section == s }

	header := sourceLabel(rep.Descriptor)
	if rep.ID != "" {
		header += "  " + output.StyleMuted.Render(shortID(rep.ID))
	}
	fmt.Fprintf(w, " %s\n", output.StyleBold.Render(header))
	fmt.Fprintf(w, " %s\n", output.StyleMuted.Render("seed "+strconv.FormatUint(rep.Seed, 10)))

	if rep.Bundle.Degraded {
		fmt.Fprintf(w, " %s\n", output.StyleWarning.Render(
			"Basic analysis only: vulnerability and license data are unavailable."))
	}

	if show(sectionOverview) {
		renderOverview(w, rep.Descriptor, &rep.Bundle.Overview)
	}
	if show(sectionQuality) {
		renderQuality(w, rep.Bundle.Quality)
	}
	if show(sectionSecurity) {
		renderSecurity(w, rep.Bundle.Security, rep.Bundle.Degraded)
	}
	if show(sectionOperations) {
		renderOperations(w, rep.Descriptor.Kind)
	}
}

func renderOverview(w io.Writer, d estimate.Descriptor, o *analyzer.Overview) {
	fmt.Fprintln(w, output.Section("Overview"))
	fmt.Fprintln(w)

	row := func(label, value string) {
		fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render(label), value)
	}
	row("Source type", string(d.Kind))
	if d.Platform != "" {
		row("Platform", string(d.Platform))
	}
	if d.SizeBytes != nil {
		row("Archive size", output.Bytes(*d.SizeBytes))
	}
	row("Files", output.Count(o.FileCount))
	row("Lines of code", output.Count(o.LineCount))
	row("Contributors", strconv.Itoa(o.Contributors))
	row("Last updated", o.LastUpdated)
	fmt.Fprintln(w)

	if len(o.Languages) == 0 {
		fmt.Fprintln(w, " No languages detected.")
		return
	}
	tbl := output.NewTable("Language", "Share", "Files", "").AlignRight(1, 2)
	for _, l := range o.Languages {
		tbl.AddRow(l.Name, fmt.Sprintf("%d%%", l.Percentage), output.Count(l.Files), output.ScoreBar(float64(l.Percentage), 20))
	}
	tbl.Fprint(w)
}

func renderQuality(w io.Writer, q estimate.Quality) {
	fmt.Fprintln(w, output.Section("Code Quality"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Complexity"), output.ScaleBar(float64(q.Complexity), 10, 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Maintainability"), output.ScoreBar(float64(q.Maintainability), 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Test coverage"), output.ScoreBar(float64(q.TestCoverage), 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Documentation"), output.ScoreBar(float64(q.Documentation), 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render(""), output.StyleMuted.Render(output.DocumentationLabel(q.Documentation)))
}

func renderSecurity(w io.Writer, s estimate.Security, degraded bool) {
	fmt.Fprintln(w, output.Section("Security"))
	fmt.Fprintln(w)

	vulns := output.Vulnerabilities(s.Vulnerabilities)
	if degraded {
		vulns = output.StyleMuted.Render("n/a")
	}
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Vulnerabilities"), vulns)
	fmt.Fprintf(w, " %s %d\n", output.StyleLabel.Render("Outdated dependencies"), s.OutdatedDependencies)
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("License"), s.License)
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Security score"), output.ScoreBar(float64(s.Score), 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render(""), output.StyleMuted.Render(output.SecurityLabel(s.Score)))
}

func renderOperations(w io.Writer, kind estimate.SourceKind) {
	fmt.Fprintln(w, output.Section("Refactoring Suggestions"))
	fmt.Fprintln(w)
	renderRefactorings(w, operations.Refactorings(kind))

	fmt.Fprintln(w, output.Section("Performance Tips"))
	fmt.Fprintln(w)
	for _, tip := range operations.PerformanceTips() {
		fmt.Fprintf(w, "  • %s\n", tip)
	}
}

func renderRefactorings(w io.Writer, refs []operations.Refactoring) {
	for _, r := range refs {
		fmt.Fprintf(w, " %s %s\n", styleLevel(r.Impact, "["+r.Type+"]"), output.StyleBold.Render(r.Suggestion))
		fmt.Fprintf(w, "    %s:%d  |  impact %s  |  effort %s\n", r.File, r.Line, r.Impact, r.Effort)
		fmt.Fprintf(w, "    %s\n\n", output.StyleMuted.Render(r.Reason))
	}
}

func styleLevel(l operations.Level, label string) string {
	switch l {
	case operations.LevelHigh:
		return output.StyleError.Render(label)
	case operations.LevelMedium:
		return output.StyleWarning.Render(label)
	default:
		return output.StyleMuted.Render(label)
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
