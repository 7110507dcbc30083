package options

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.txt
var dataFS embed.FS

const (
	SourceTimezones = "timezones"
	SourceCountries = "countries"
)

var sourcePaths = map[string]string{
	SourceTimezones: "data/timezones.txt",
	SourceCountries: "data/countries.txt",
}

var (
	cacheMu sync.Mutex
	cache   = map[string][]string{}
)

// Timezones returns the embedded IANA time zone identifiers, sorted.
func Timezones() ([]string, error) {
	return load(SourceTimezones)
}

// Countries returns the embedded country names, sorted.
func Countries() ([]string, error) {
	return load(SourceCountries)
}

// Lookup resolves a named source. The boolean is false for unknown names.
func Lookup(name string) ([]string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := sourcePaths[key]; !ok {
		return nil, false
	}
	values, err := load(key)
	if err != nil {
		return nil, false
	}
	return values, true
}

// Known reports whether name refers to a bundled source.
func Known(name string) bool {
	_, ok := sourcePaths[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func load(name string) ([]string, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if values, ok := cache[name]; ok {
		return append([]string{}, values...), nil
	}

	f, err := dataFS.Open(sourcePaths[name])
	if err != nil {
		return nil, fmt.Errorf("options: open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	values, err := LoadList(f)
	if err != nil {
		return nil, fmt.Errorf("options: load %s: %w", name, err)
	}
	cache[name] = values
	return append([]string{}, values...), nil
}

// LoadList reads one entry per line, skipping blanks, comments and
// duplicates. The result is sorted.
func LoadList(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("options: missing reader")
	}

	scanner := bufio.NewScanner(r)
	values := make([]string, 0, 128)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		values = append(values, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(values)
	return values, nil
}
