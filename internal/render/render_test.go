package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cadence/internal/core"
)

func samplePlan() core.ContentPlan {
	return core.ContentPlan{
		{Day: 1, Topic: "Desk Stretches", Caption: "Loosen up, \"desk warriors\" 💪", Hashtags: "#DeskStretches #Fitness #Workout"},
		{Day: 2, Topic: "Q&A Session", Caption: "Ask me anything,\nI'll answer 🔥", Hashtags: "#QASession #Fitness #Health"},
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plan.csv")
	plan := samplePlan()

	if err := Export(plan, path, FormatCSV); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "Day,Topic,Caption,Hashtags\n") {
		t.Errorf("Expected header row first, got %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(plan) {
		t.Fatalf("Expected %d rows, got %d", len(plan), len(got))
	}
	for i := range plan {
		if got[i] != plan[i] {
			t.Errorf("Row %d mismatch:\n got: %+v\nwant: %+v", i, got[i], plan[i])
		}
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := Export(samplePlan(), path, FormatJSON); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "Q&A Session") {
		t.Error("Expected HTML escaping to be disabled")
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	for _, key := range Header {
		if _, ok := rows[0][key]; !ok {
			t.Errorf("Expected key %q in JSON row", key)
		}
	}
	if len(rows[0]) != len(Header) {
		t.Errorf("Expected exactly %d keys, got %v", len(Header), rows[0])
	}

	// keys appear in column order
	first := string(data)
	last := -1
	for _, key := range Header {
		idx := strings.Index(first, `"`+key+`"`)
		if idx < last {
			t.Errorf("Key %q out of order", key)
		}
		last = idx
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got[1] != samplePlan()[1] {
		t.Errorf("JSON round trip mismatch: %+v", got[1])
	}
}

func TestExportUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	err := Export(samplePlan(), filepath.Join(blocker, "plan.csv"), FormatCSV)
	var ioErr *core.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected *core.IOError, got %T: %v", err, err)
	}
	if ioErr.Path != blocker {
		t.Errorf("Expected failing path %s, got %s", blocker, ioErr.Path)
	}
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "A,B,C,D\n1,a,b,c\n"},
		{"bad day", "Day,Topic,Caption,Hashtags\none,a,b,c\n"},
		{"short row", "Day,Topic,Caption,Hashtags\n1,a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	var ioErr *core.IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected IOError wrapping ErrNotExist, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"csv": FormatCSV, " JSON ": FormatJSON} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("Expected error for xlsx")
	}

	if FormatFromPath("out/plan.JSON") != FormatJSON || FormatFromPath("plan.csv") != FormatCSV || FormatFromPath("plan") != FormatCSV {
		t.Error("Unexpected format inferred from path")
	}
}

func TestWriteCSVEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if buf.String() != "Day,Topic,Caption,Hashtags\n" {
		t.Errorf("Expected header only, got %q", buf.String())
	}
}

func TestSuggestedFilename(t *testing.T) {
	tests := []struct {
		theme  string
		days   int
		format Format
		want   string
	}{
		{"Fitness for Busy Professionals", 30, FormatCSV, "content_plan_fitness_for_busy_professionals_30days.csv"},
		{"  Q&A: Startups!\n2025 ", 7, FormatJSON, "content_plan_qa_startups_2025_7days.json"},
		{"self-care", 14, "", "content_plan_self-care_14days.csv"},
		{strings.Repeat("a", 60), 90, FormatCSV, "content_plan_" + strings.Repeat("a", 50) + "_90days.csv"},
	}
	for _, tt := range tests {
		if got := SuggestedFilename(tt.theme, tt.days, tt.format); got != tt.want {
			t.Errorf("SuggestedFilename(%q) = %q, want %q", tt.theme, got, tt.want)
		}
	}
}
