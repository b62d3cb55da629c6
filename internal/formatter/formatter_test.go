package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmsouza/musicctl/internal/models"
	th "github.com/vmsouza/musicctl/internal/testing"
)

func TestLaunchDate(t *testing.T) {
	t.Run("MaskLaunchDate", func(t *testing.T) {
		cases := []struct {
			input string
			want  string
		}{
			{"03101965", "03/10/1965"},
			{"03/10/1965", "03/10/1965"},
			{"0310196", "0310196"},
			{"", ""},
		}

		for _, c := range cases {
			if got := MaskLaunchDate(c.input); got != c.want {
				t.Errorf("MaskLaunchDate(%q) = %q, want %q", c.input, got, c.want)
			}
		}
	})

	t.Run("UnmaskLaunchDate", func(t *testing.T) {
		if got := UnmaskLaunchDate("03/10/1965"); got != "03101965" {
			t.Errorf("expected 03101965, got %q", got)
		}
		if got := UnmaskLaunchDate("03101965"); got != "03101965" {
			t.Errorf("unmasked input should pass through, got %q", got)
		}
	})

	t.Run("FormatLaunchDate", func(t *testing.T) {
		if got := FormatLaunchDate("03101965"); got != "03 October 1965" {
			t.Errorf("expected 03 October 1965, got %q", got)
		}
		if got := FormatLaunchDate("99999999"); got != "99/99/9999" {
			t.Errorf("unparseable date should fall back to masked form, got %q", got)
		}
	})
}

func TestDisplayHelpers(t *testing.T) {
	t.Run("FormatDuration", func(t *testing.T) {
		if got := FormatDuration("3:45"); got != "3:45 min" {
			t.Errorf("expected 3:45 min, got %q", got)
		}
		if got := FormatDuration(""); got != "" {
			t.Errorf("empty duration should stay empty, got %q", got)
		}
	})

	t.Run("FormatViews", func(t *testing.T) {
		cases := []struct {
			input int64
			want  string
		}{
			{0, "0"},
			{999, "999"},
			{1000, "1.000"},
			{1234567, "1.234.567"},
			{-54321, "-54.321"},
		}

		for _, c := range cases {
			if got := FormatViews(c.input); got != c.want {
				t.Errorf("FormatViews(%d) = %q, want %q", c.input, got, c.want)
			}
		}
	})

	t.Run("FormatFeat", func(t *testing.T) {
		if FormatFeat(true) != "Yes" || FormatFeat(false) != "No" {
			t.Error("expected Yes/No rendering")
		}
	})
}

func TestExportToCSV(t *testing.T) {
	id := int64(7)
	views := int64(1500000)
	records := []models.Music{
		{
			ID:          &id,
			Title:       "Bohemian Rhapsody",
			Artist:      "Queen",
			LaunchDate:  "31101975",
			Duration:    "5:55",
			ViewsNumber: &views,
			Feat:        false,
		},
		{
			Title:      "Under Pressure",
			Artist:     "Queen",
			LaunchDate: "26101981",
			Duration:   "4:08",
			Feat:       true,
		},
	}

	data, err := ExportToCSV(records)
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	output := string(data)

	if !strings.Contains(output, "ID,Title,Artist,Launch Date,Duration,Views,Feat") {
		t.Errorf("CSV missing headers, got: %s", output)
	}
	if !strings.Contains(output, "Bohemian Rhapsody") {
		t.Errorf("CSV missing first title")
	}
	if !strings.Contains(output, "31/10/1975") {
		t.Errorf("CSV should carry masked launch dates, got: %s", output)
	}
	if !strings.Contains(output, "Under Pressure") {
		t.Errorf("CSV missing unsaved record")
	}
	if !strings.Contains(output, "Yes") {
		t.Errorf("CSV missing feat rendering")
	}
}

func TestWriteCSVExport(t *testing.T) {
	records := []models.Music{
		{Title: "Radio Ga Ga", Artist: "Queen", LaunchDate: "23011984", Duration: "5:48"},
	}

	path := filepath.Join(t.TempDir(), "export.csv")
	written, err := WriteCSVExport(records, path)
	if err != nil {
		t.Fatalf("WriteCSVExport failed: %v", err)
	}
	if written != path {
		t.Errorf("expected path %s, got %s", path, written)
	}

	th.AssertFileExists(t, path)
	content := th.MustReadFile(t, path)
	if !strings.Contains(content, "Radio Ga Ga") {
		t.Errorf("exported file missing record, got: %s", content)
	}

	t.Run("Default Filename", func(t *testing.T) {
		wd := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, wd)

		written, err := WriteCSVExport(records, "")
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		if written != "musics.csv" {
			t.Errorf("expected default filename musics.csv, got %s", written)
		}
		if _, err := os.Stat(written); err != nil {
			t.Errorf("expected default export file to exist: %v", err)
		}
	})
}
