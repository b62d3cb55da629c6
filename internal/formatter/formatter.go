// package formatter converts catalog records between wire, edit, and
// display shapes, and exports record listings to CSV.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vmsouza/musicctl/internal/models"
)

// MaskLaunchDate converts a wire launch date (ddmmyyyy) into the masked
// edit form (dd/mm/yyyy). Values that are already masked or that do not
// have eight digits pass through unchanged.
func MaskLaunchDate(date string) string {
	if strings.Contains(date, "/") || len(date) != 8 {
		return date
	}
	return date[0:2] + "/" + date[2:4] + "/" + date[4:8]
}

// UnmaskLaunchDate strips the separators from a masked launch date,
// producing the ddmmyyyy wire form.
func UnmaskLaunchDate(date string) string {
	return strings.ReplaceAll(date, "/", "")
}

// FormatLaunchDate renders a wire launch date as a long-form date, e.g.
// "03 October 2019". Unparseable values fall back to the masked form.
func FormatLaunchDate(date string) string {
	parsed, err := time.Parse("02012006", UnmaskLaunchDate(date))
	if err != nil {
		return MaskLaunchDate(date)
	}
	return parsed.Format("02 January 2006")
}

// FormatDuration renders a duration for display, e.g. "3:45 min".
func FormatDuration(duration string) string {
	if duration == "" {
		return ""
	}
	return duration + " min"
}

// FormatViews renders a view count with dot-grouped thousands.
func FormatViews(views int64) string {
	digits := strconv.FormatInt(views, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	formatted := strings.Join(groups, ".")
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

// FormatFeat renders the featured flag as Yes/No.
func FormatFeat(feat bool) string {
	if feat {
		return "Yes"
	}
	return "No"
}

// ExportToCSV converts a record listing to CSV with columns: ID, Title,
// Artist, Launch Date, Duration, Views, Feat
func ExportToCSV(records []models.Music) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Launch Date", "Duration", "Views", "Feat"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range records {
		id := ""
		if m.ID != nil {
			id = strconv.FormatInt(*m.ID, 10)
		}
		views := ""
		if m.ViewsNumber != nil {
			views = strconv.FormatInt(*m.ViewsNumber, 10)
		}
		record := []string{
			id,
			m.Title,
			m.Artist,
			MaskLaunchDate(m.LaunchDate),
			m.Duration,
			views,
			FormatFeat(m.Feat),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteCSVExport writes a record listing as CSV to the given path.
// The filename defaults to musics.csv.
func WriteCSVExport(records []models.Music, filepath string) (string, error) {
	if filepath == "" {
		filepath = "musics.csv"
	}

	csvData, err := ExportToCSV(records)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}
