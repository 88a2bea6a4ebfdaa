// Package export writes a finished record set to disk as json, csv, excel
// or xml. Rows are ordered maps so fields beyond the known record shape
// (e.g. from a replayed snapshot file) still make it into the output.
package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// preferredOrder pins the well-known columns for tabular output; anything
// else follows alphabetically.
var preferredOrder = []string{
	"jobId",
	"title",
	"description",
	"createdAt",
	"jobType",
	"duration",
	"budget",
	"clientLocation",
	"clientPaymentVerification",
	"clientSpent",
	"clientReviews",
	"category",
	"skills",
}

type Exporter struct {
	outputDir string
}

func New(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Exporter{outputDir: outputDir}, nil
}

// Export writes rows in the requested format and returns the file path.
// An empty row set or an unknown format is a configuration error.
func (e *Exporter) Export(rows []map[string]any, format string, filePrefix string) (string, error) {
	if len(rows) == 0 {
		return "", errors.New("no data supplied for export")
	}

	switch strings.ToLower(format) {
	case "json":
		return e.writeJSON(rows, filePrefix)
	case "csv":
		return e.writeCSV(rows, filePrefix)
	case "excel":
		return e.writeExcel(rows, filePrefix)
	case "xml":
		return e.writeXML(rows, filePrefix)
	default:
		return "", fmt.Errorf("unsupported export format: %q", format)
	}
}

func (e *Exporter) writeJSON(rows []map[string]any, prefix string) (string, error) {
	path := filepath.Join(e.outputDir, prefix+".json")
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) writeCSV(rows []map[string]any, prefix string) (string, error) {
	path := filepath.Join(e.outputDir, prefix+".csv")
	fields := fieldNames(rows)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return "", err
	}
	for _, row := range rows {
		rec := make([]string, len(fields))
		for i, k := range fields {
			rec[i] = flatten(row[k])
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) writeExcel(rows []map[string]any, prefix string) (string, error) {
	path := filepath.Join(e.outputDir, prefix+".xlsx")
	fields := fieldNames(rows)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, name := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return "", err
		}
	}
	for i, row := range rows {
		for col, k := range fields {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, flatten(row[k])); err != nil {
				return "", err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save xlsx: %w", err)
	}
	return path, nil
}

func (e *Exporter) writeXML(rows []map[string]any, prefix string) (string, error) {
	path := filepath.Join(e.outputDir, prefix+".xml")
	fields := fieldNames(rows)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return "", err
	}

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "jobs"}}
	if err := enc.EncodeToken(root); err != nil {
		return "", err
	}
	for _, row := range rows {
		job := xml.StartElement{Name: xml.Name{Local: "job"}}
		if err := enc.EncodeToken(job); err != nil {
			return "", err
		}
		for _, k := range fields {
			v, ok := row[k]
			if !ok {
				continue
			}
			el := xml.StartElement{Name: xml.Name{Local: k}}
			if err := enc.EncodeElement(flatten(v), el); err != nil {
				return "", err
			}
		}
		if err := enc.EncodeToken(job.End()); err != nil {
			return "", err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// fieldNames is the union of all row keys: the preferred columns first,
// extras sorted alphabetically after.
func fieldNames(rows []map[string]any) []string {
	present := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			present[k] = true
		}
	}

	var out []string
	for _, f := range preferredOrder {
		if present[f] {
			out = append(out, f)
			delete(present, f)
		}
	}
	var extra []string
	for k := range present {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// flatten renders any value for flat output; lists join with comma+space.
func flatten(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, flatten(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(x)
	}
}
