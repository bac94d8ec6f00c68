package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
)

var (
	styleTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	styleSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

// Render writes the comparison as a styled table. CI mode drops styling
// and prints one machine-greppable line per strategy instead.
func Render(w io.Writer, c Comparison, gate Gate, ci bool) {
	if ci {
		renderCI(w, c, gate)
		return
	}

	fmt.Fprintln(w, styleTitle.Render("Strategy comparison"))
	fmt.Fprintln(w, styleSubtle.Render("Generated: "+c.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Strategy", "Dup F1", "Consolidation", "Tag Reuse", "Conn P/R", "NVQ Pass", "Notes", "Errors"})
	for _, a := range c.Aggregates {
		m := a.Metrics
		nvq := "-"
		if a.QualityScored > 0 {
			nvq = fmt.Sprintf("%.0f%%", a.NVQPassRate()*100)
		}
		errs := ""
		if m.Error != "" {
			errs = styleError.Render("yes")
		}
		t.AppendRow(table.Row{
			a.Strategy,
			fmt.Sprintf("%.3f", m.F1()),
			fmt.Sprintf("%.3f", m.ConsolidationAccuracy()),
			fmt.Sprintf("%.3f", m.TagReuseRate()),
			fmt.Sprintf("%.2f/%.2f", m.ConnectionPrecision(), m.ConnectionRecall()),
			nvq,
			m.NotesExtracted,
			errs,
		})
	}
	t.Render()
	fmt.Fprintln(w)

	if gate.Passed {
		fmt.Fprintln(w, styleSuccess.Render("Gate: PASS"))
		return
	}
	fmt.Fprintln(w, styleError.Render("Gate: FAIL"))
	for _, f := range gate.Failures {
		fmt.Fprintln(w, styleError.Render("  - "+f))
	}
}

func renderCI(w io.Writer, c Comparison, gate Gate) {
	for _, a := range c.Aggregates {
		m := a.Metrics
		fmt.Fprintf(w, "strategy=%s f1=%.3f consolidation=%.3f tag_reuse=%.3f conn_precision=%.3f conn_recall=%.3f notes=%d",
			a.Strategy, m.F1(), m.ConsolidationAccuracy(), m.TagReuseRate(),
			m.ConnectionPrecision(), m.ConnectionRecall(), m.NotesExtracted)
		if a.QualityScored > 0 {
			fmt.Fprintf(w, " nvq_pass_rate=%.3f", a.NVQPassRate())
		}
		if m.Error != "" {
			fmt.Fprintf(w, " error=%q", m.Error)
		}
		fmt.Fprintln(w)
	}
	if gate.Passed {
		fmt.Fprintln(w, "gate=pass")
		return
	}
	fmt.Fprintf(w, "gate=fail reasons=%q\n", strings.Join(gate.Failures, "; "))
}

// WriteJSON persists the comparison and gate verdict to a file, creating
// parent directories as needed.
func WriteJSON(fs afero.Fs, path string, c Comparison, gate Gate) error {
	payload := struct {
		Comparison
		Gate Gate `json:"gate"`
	}{Comparison: c, Gate: gate}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
