package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/siklus/internal/model"
)

// ErrUnknownFormat is returned when no parser accepts a file's header.
var ErrUnknownFormat = errors.New("unrecognized import format")

// Parser converts a CSV file into journal lines. Entry IDs in the result
// are advisory; the journal service assigns fresh ones.
type Parser interface {
	Parse(r io.Reader) ([]model.Line, error)
	// Match reports whether a header row belongs to this format.
	Match(header []string) bool
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Detect returns the parser whose Match accepts header. Formats are tried
// in name order so detection is deterministic.
func (r *Registry) Detect(header []string) (Parser, error) {
	for _, name := range r.Formats() {
		if p := r.parsers[name]; p.Match(header) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: header %q", ErrUnknownFormat, strings.Join(header, ","))
}

// Parse reads data with the named parser, or the detected one when format
// is empty. Returns the lines and the format used.
func (r *Registry) Parse(data []byte, format string) ([]model.Line, string, error) {
	var p Parser
	if format != "" {
		if p = r.Get(format); p == nil {
			return nil, "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownFormat, format, strings.Join(r.Formats(), ", "))
		}
	} else {
		header, err := csv.NewReader(bytes.NewReader(data)).Read()
		if errors.Is(err, io.EOF) {
			return nil, "", nil
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading header: %w", err)
		}
		if p, err = r.Detect(header); err != nil {
			return nil, "", err
		}
	}

	lines, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, p.Format(), fmt.Errorf("parsing %s file: %w", p.Format(), err)
	}
	return lines, p.Format(), nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JournalParser{})
	r.Register(&LegacyParser{})
	return r
}

// importDir is the subdirectory for import CSVs.
const importDir = "import"

// processedDir is the subdirectory for processed CSVs.
const processedDir = "import/processed"

// Scan returns CSV files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Requeue moves a file from import/processed/ back to import/.
func Requeue(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, processedDir, fileName)
	dst := filepath.Join(repoRoot, importDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("requeueing %s: %w", fileName, err)
	}
	return nil
}
