package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rebeliceyang/lazybrew/internal/models"
)

func testBreweries() []models.Brewery {
	lat := models.Coordinate(44.0582)
	lon := models.Coordinate(-121.3153)
	return []models.Brewery{
		{
			ID:            "b1",
			Name:          "Deschutes, \"The\" Brewery",
			BreweryType:   models.TypeRegional,
			Street:        "901 SW Simpson Ave",
			City:          "Bend",
			StateProvince: "Oregon",
			PostalCode:    "97702",
			Country:       "United States",
			Latitude:      &lat,
			Longitude:     &lon,
			Phone:         "5413855606",
			WebsiteURL:    "http://www.deschutesbrewery.com",
		},
		{
			ID:          "b2",
			Name:        "Tiny Taps",
			BreweryType: models.TypeNano,
			Address1:    "1 Main St",
			City:        "Akron",
			State:       "Ohio",
			Country:     "United States",
		},
	}
}

func TestExportToCSV(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "test.csv")

	if err := ExportToCSV(testBreweries(), csvPath); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 3 { // header + 2 rows
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	if !slicesEqual(records[0], csvHeader) {
		t.Errorf("Header mismatch.\nExpected: %v\nGot: %v", csvHeader, records[0])
	}

	row1 := records[1]
	if row1[1] != "Deschutes, \"The\" Brewery" {
		t.Errorf("Expected quoted name to round trip, got '%s'", row1[1])
	}
	if row1[7] != "Oregon" {
		t.Errorf("Expected state 'Oregon', got '%s'", row1[7])
	}
	if row1[10] != "44.0582" {
		t.Errorf("Expected latitude '44.0582', got '%s'", row1[10])
	}

	// legacy fields fill in when the newer ones are missing
	row2 := records[2]
	if row2[3] != "1 Main St" {
		t.Errorf("Expected street fallback '1 Main St', got '%s'", row2[3])
	}
	if row2[7] != "Ohio" {
		t.Errorf("Expected state fallback 'Ohio', got '%s'", row2[7])
	}
	if row2[10] != "" || row2[11] != "" {
		t.Errorf("Expected empty coordinates, got '%s' '%s'", row2[10], row2[11])
	}
}

func TestExportToJSON(t *testing.T) {
	tmpDir := t.TempDir()
	jsonPath := filepath.Join(tmpDir, "test.json")

	if err := ExportToJSON(testBreweries(), jsonPath); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var parsed []models.Brewery
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if len(parsed) != 2 {
		t.Fatalf("Expected 2 breweries, got %d", len(parsed))
	}
	if parsed[0].ID != "b1" || parsed[0].Latitude == nil {
		t.Errorf("Expected b1 with coordinates, got %+v", parsed[0])
	}

	jsonStr := string(data)
	if !strings.Contains(jsonStr, "\n  ") {
		t.Error("JSON should be pretty-printed")
	}
}

func TestExportEmpty(t *testing.T) {
	tmpDir := t.TempDir()

	csvPath := filepath.Join(tmpDir, "empty.csv")
	if err := ExportToCSV(nil, csvPath); err != nil {
		t.Fatalf("ExportToCSV with empty list failed: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer func() { _ = file.Close() }()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) != 1 { // Only header
		t.Errorf("Expected 1 record (header), got %d", len(records))
	}

	jsonPath := filepath.Join(tmpDir, "empty.json")
	if err := ExportToJSON(nil, jsonPath); err != nil {
		t.Fatalf("ExportToJSON with empty list failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty array, got %s", data)
	}
}

func TestExport_TimestampedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	path, err := Export(testBreweries(), dir, FormatJSON, now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	want := filepath.Join(dir, "breweries-20240309-140507.json")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	if _, err := Export(nil, t.TempDir(), Format("xml"), time.Now()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

// Helper function to compare slices
func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
