// Package render writes content plans to disk and reads exported plans back.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"cadence/internal/core"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Header is the column order shared by every export.
var Header = []string{"Day", "Topic", "Caption", "Hashtags"}

// ParseFormat accepts "csv" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: csv, json)", s)
	}
}

// FormatFromPath infers the format from the file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)
	filenameWhitespace  = regexp.MustCompile(`\s+`)
)

// SuggestedFilename names a download for theme, e.g.
// "content_plan_fitness_for_busy_professionals_30days.csv".
func SuggestedFilename(theme string, days int, format Format) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(theme), "")
	name = strings.ToLower(filenameWhitespace.ReplaceAllString(name, "_"))
	if r := []rune(name); len(r) > 50 {
		name = string(r[:50])
	}
	if format == "" {
		format = FormatCSV
	}
	return fmt.Sprintf("content_plan_%s_%ddays.%s", name, days, format)
}

// Export writes plan to path, creating parent directories. Any filesystem
// failure is reported as *core.IOError.
func Export(plan core.ContentPlan, path string, format Format) error {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV, "":
		err = WriteCSV(&buf, plan)
	case FormatJSON:
		err = WriteJSON(&buf, plan)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &core.IOError{Op: "create directory", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &core.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteCSV writes a header row followed by one row per day.
func WriteCSV(w io.Writer, plan core.ContentPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range plan {
		if err := cw.Write([]string{strconv.Itoa(e.Day), e.Topic, e.Caption, e.Hashtags}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an indented array of day objects.
func WriteJSON(w io.Writer, plan core.ContentPlan) error {
	if plan == nil {
		plan = core.ContentPlan{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// ReadCSV parses a plan written by WriteCSV.
func ReadCSV(r io.Reader) (core.ContentPlan, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to parse CSV: missing header")
	}
	for i, col := range Header {
		if !strings.EqualFold(strings.TrimPrefix(records[0][i], "\ufeff"), col) {
			return nil, fmt.Errorf("unexpected CSV header %v, want %v", records[0], Header)
		}
	}

	plan := make(core.ContentPlan, 0, len(records)-1)
	for i, rec := range records[1:] {
		day, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid day %q", i+2, rec[0])
		}
		plan = append(plan, core.DayEntry{Day: day, Topic: rec[1], Caption: rec[2], Hashtags: rec[3]})
	}
	return plan, nil
}

// ReadJSON parses a plan written by WriteJSON.
func ReadJSON(r io.Reader) (core.ContentPlan, error) {
	var plan core.ContentPlan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return plan, nil
}

// Load reads an exported plan, choosing the parser from the file extension.
func Load(path string) (core.ContentPlan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	if FormatFromPath(path) == FormatJSON {
		return ReadJSON(f)
	}
	return ReadCSV(f)
}
