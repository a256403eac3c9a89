// Package export renders the note projection in external formats.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/marcus/pinboard/internal/notes"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV, FormatHTML, FormatPDF}

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Source supplies the snapshot to export. *notes.Store satisfies it.
type Source interface {
	Snapshot() notes.Snapshot
}

// Exporter renders the current snapshot of a Source.
type Exporter struct{ src Source }

// NewExporter returns an Exporter reading from src.
func NewExporter(src Source) *Exporter { return &Exporter{src: src} }

// Export renders the current projection in format.
func (e *Exporter) Export(format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, e.src.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders snap.Projection to w.
func Write(w io.Writer, format Format, snap notes.Snapshot) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, snap.Projection)
	case FormatYAML:
		return writeYAML(w, snap.Projection)
	case FormatCSV:
		return writeCSV(w, snap.Projection)
	case FormatHTML:
		return writeHTML(w, snap)
	case FormatPDF:
		return writePDF(w, snap)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, list []notes.Note) error {
	data, err := notes.Encode(list)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, data+"\n")
	return err
}

// yamlNote mirrors the stored record field names.
type yamlNote struct {
	ID        int64   `yaml:"id"`
	Text      string  `yaml:"text"`
	Priority  string  `yaml:"priority"`
	Completed bool    `yaml:"completed"`
	Rotation  float64 `yaml:"rotation"`
	CreatedAt string  `yaml:"createdAt"`
}

func writeYAML(w io.Writer, list []notes.Note) error {
	out := make([]yamlNote, 0, len(list))
	for _, n := range list {
		out = append(out, yamlNote{
			ID:        n.ID,
			Text:      n.Text,
			Priority:  n.Priority.String(),
			Completed: n.Completed,
			Rotation:  n.Rotation,
			CreatedAt: n.CreatedAt,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

var csvHeader = []string{"id", "text", "priority", "completed", "rotation", "createdAt"}

func writeCSV(w io.Writer, list []notes.Note) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, n := range list {
		row := []string{
			strconv.FormatInt(n.ID, 10),
			n.Text,
			n.Priority.String(),
			strconv.FormatBool(n.Completed),
			strconv.FormatFloat(n.Rotation, 'f', -1, 64),
			n.CreatedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeHTML(w io.Writer, snap notes.Snapshot) error {
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Pinboard</title></head>\n<body>\n%s</body>\n</html>\n",
		notes.RenderMarkup(snap))
	return err
}

// pdfColors are the paper colors of each priority.
var pdfColors = map[notes.Priority][3]int{
	notes.PriorityHigh:   {252, 165, 165},
	notes.PriorityMedium: {253, 230, 138},
	notes.PriorityLow:    {167, 243, 208},
}

var pdfCompleted = [3]int{209, 213, 219}

func writePDF(w io.Writer, snap notes.Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Pinboard", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Pinboard")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Filter: %s   Total: %d   Completed: %d   Pending: %d",
		snap.Filter, snap.Stats.Total, snap.Stats.Completed, snap.Stats.Pending))
	pdf.Ln(10)

	if len(snap.Projection) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.MultiCell(0, 8, tr(notes.EmptyMessage(snap.Filter)+" "+notes.EmptyHint), "", "L", false)
	}

	for _, n := range snap.Projection {
		c, ok := pdfColors[n.Priority]
		if !ok {
			c = pdfColors[notes.PriorityMedium]
		}
		if n.Completed {
			c = pdfCompleted
		}
		pdf.SetFillColor(c[0], c[1], c[2])

		style := ""
		if n.Completed {
			style = "I"
		}
		pdf.SetFont("Arial", style, 12)
		pdf.MultiCell(0, 7, tr(n.Text), "LTR", "L", true)
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Pinned: %s   Priority: %s", n.CreatedAt, n.Priority)), "LBR", "L", true)
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
