package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/metadata"
)

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	helpStyle   = lipgloss.NewStyle().Foreground(dim)
	borderStyle = lipgloss.NewStyle().Foreground(primary)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type summaryView struct {
	Collection string          `json:"collection"`
	Dimension  int             `json:"dimension"`
	Metric     string          `json:"metric"`
	Partitions []partitionView `json:"partitions"`
	Total      int             `json:"total"`
}

type partitionView struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func renderSummary(w io.Writer, s partvec.Summary, asJSON bool) error {
	if asJSON {
		v := summaryView{
			Collection: s.Collection,
			Dimension:  s.Dimension,
			Metric:     s.Metric,
			Partitions: make([]partitionView, len(s.Partitions)),
			Total:      s.Total,
		}
		for i, p := range s.Partitions {
			v.Partitions[i] = partitionView{Name: p.Name, Count: p.Count}
		}
		return writeJSON(w, v)
	}

	t := newTable("Partition", "Vectors")
	for _, p := range s.Partitions {
		t.Row(p.Name, strconv.Itoa(p.Count))
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Collection),
		field("Dimension", strconv.Itoa(s.Dimension)),
		field("Metric", s.Metric),
		t.String(),
		field("Total vectors", strconv.Itoa(s.Total)),
	)
	_, err := fmt.Fprintln(w, out)
	return err
}

type resultView struct {
	ID        string  `json:"id"`
	Partition string  `json:"partition"`
	Distance  float64 `json:"distance"`
}

func renderResults(w io.Writer, results []partvec.Result, asJSON bool) error {
	if asJSON {
		v := make([]resultView, len(results))
		for i, r := range results {
			v[i] = resultView{ID: r.ID, Partition: r.Partition, Distance: r.Distance}
		}
		return writeJSON(w, v)
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, helpStyle.Render("no results"))
		return err
	}

	t := newTable("#", "ID", "Partition", "Distance")
	for i, r := range results {
		t.Row(strconv.Itoa(i+1), r.ID, r.Partition, strconv.FormatFloat(r.Distance, 'f', 4, 64))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

type recordView struct {
	ID        string         `json:"id"`
	Partition string         `json:"partition"`
	Vector    []float32      `json:"vector"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func renderRecord(w io.Writer, id, partition string, rec partvec.Record, asJSON bool) error {
	if asJSON {
		return writeJSON(w, recordView{
			ID:        id,
			Partition: partition,
			Vector:    rec.Vector,
			Metadata:  rec.Metadata.ToMap(),
		})
	}

	lines := []string{
		titleStyle.Render(id),
		field("Partition", partition),
		field("Vector", formatVector(rec.Vector)),
	}
	if len(rec.Metadata) > 0 {
		lines = append(lines, labelStyle.Render("Metadata:"))
		lines = append(lines, formatMetadata(rec.Metadata)...)
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

func formatVector(vec []float32) string {
	parts := make([]string, len(vec))
	for i, x := range vec {
		parts[i] = strconv.FormatFloat(float64(x), 'g', -1, 32)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatMetadata(doc metadata.Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("  %s = %v", k, doc[k].Any())
	}
	return lines
}
