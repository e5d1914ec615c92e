package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/extrame/xls"
)

// Source is one notification log: the lines of a single export file.
type Source struct {
	Name  string
	Lines []string
}

// Reader loads notification exports from disk. Failures are contained
// per file: a file that cannot be read is logged and skipped, the rest
// of the directory is still processed.
type Reader struct {
	logger *log.Logger
}

// New returns a reader that logs skipped files to the given logger.
func New(logger *log.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadDirectory collects every .txt and .xls export in dir. Order
// follows the directory listing, which os.ReadDir returns sorted by
// file name.
func (r *Reader) ReadDirectory(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		lines, err := r.readFile(path)
		if err != nil {
			r.logger.Error("skipping unreadable file", "file", path, "error", err)
			continue
		}
		if lines == nil {
			continue // unsupported extension
		}
		sources = append(sources, Source{Name: entry.Name(), Lines: lines})
	}
	return sources, nil
}

func (r *Reader) readFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return readTxt(path)
	case ".xls":
		return readXls(path)
	default:
		return nil, nil
	}
}

func readTxt(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readXls treats the first cell of each row as one notification message.
// Some phones export their SMS log as a spreadsheet instead of plain
// text.
func readXls(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	workbook, err := xls.OpenReader(file, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(10000)
	var lines []string
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		lines = append(lines, row[0])
	}
	return lines, nil
}
