// Package export renders an edition to files: a Markdown book, the raw JSON, a
// design-tool CSV, a plain-text summary and an ICS calendar.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatSummary  Format = "summary"
	FormatICS      Format = "ics"
)

// Formats lists every supported format in write order.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatCSV, FormatSummary, FormatICS}

// Extension returns the file extension used for a format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatSummary:
		return "txt"
	default:
		return string(f)
	}
}

// ParseFormat accepts a format name, case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write renders an edition in one format.
func Write(w io.Writer, ed models.Edition, f Format) error {
	switch f {
	case FormatMarkdown:
		return Markdown(w, ed)
	case FormatJSON:
		return JSON(w, ed)
	case FormatCSV:
		return CSV(w, ed)
	case FormatSummary:
		return Summary(w, ed)
	case FormatICS:
		return ICS(w, ed, ed.GeneratedAt.Year())
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Slug turns a display name into a file-name fragment.
func Slug(s string) string {
	s = nonWord.ReplaceAllString(strings.ToLower(s), "")
	return strings.Join(strings.Fields(s), "_")
}

// FileName returns "<slug>_<date>.<ext>" for an edition.
func FileName(ed models.Edition, f Format) string {
	return fmt.Sprintf("%s_%s.%s", Slug(ed.Title()), ed.GeneratedAt.Format(constants.DateFormat), f.Extension())
}

// WriteFiles writes each requested format into dir and returns the path per format.
func WriteFiles(ed models.Edition, dir string, formats []Format) (map[Format]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make(map[Format]string, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, FileName(ed, f))
		if err := writeFile(path, ed, f); err != nil {
			return paths, err
		}
		paths[f] = path
		logger.Info("Export written", "format", string(f), "path", path)
	}
	return paths, nil
}

func writeFile(path string, ed models.Edition, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := Write(file, ed, f); err != nil {
		return fmt.Errorf("failed to write %s export: %w", f, err)
	}
	return nil
}
