package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rebeliceyang/lazybrew/internal/models"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// csvHeader lists the exported columns in order
var csvHeader = []string{
	"ID", "Name", "Type", "Street", "Address 2", "Address 3", "City",
	"State/Province", "Postal Code", "Country", "Latitude", "Longitude",
	"Phone", "Website",
}

// ExportToCSV writes breweries to a CSV file, one row per record
func ExportToCSV(breweries []models.Brewery, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range breweries {
		row := []string{
			b.ID,
			b.Name,
			string(b.BreweryType),
			b.StreetAddress(),
			b.Address2,
			b.Address3,
			b.City,
			b.Region(),
			b.PostalCode,
			b.Country,
			coordinate(b.Latitude),
			coordinate(b.Longitude),
			b.Phone,
			b.WebsiteURL,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportToJSON writes breweries to a pretty-printed JSON array
func ExportToJSON(breweries []models.Brewery, path string) error {
	if breweries == nil {
		breweries = []models.Brewery{}
	}

	data, err := json.MarshalIndent(breweries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal breweries to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// Export writes breweries into dir using a timestamped file name and returns
// the path written
func Export(breweries []models.Brewery, dir string, format Format, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(format, now))
	switch format {
	case FormatCSV:
		return path, ExportToCSV(breweries, path)
	case FormatJSON:
		return path, ExportToJSON(breweries, path)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// FileName builds breweries-YYYYMMDD-HHMMSS.<ext>
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("breweries-%s.%s", now.Format("20060102-150405"), strings.ToLower(string(format)))
}

func coordinate(c *models.Coordinate) string {
	if c == nil {
		return ""
	}
	return c.String()
}
