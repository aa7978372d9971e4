package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"
)

var fileTemplate = template.Must(template.New("migration").Parse(`-- Migration: {{.Name}}{{if .Rollback}} (rollback){{end}}
-- Description: {{.Description}}

`))

// Pair is a freshly scaffolded up/down file pair
type Pair struct {
	Version  string
	UpPath   string
	DownPath string
}

// Create writes an empty up/down pair named <version>_<slug> into dir.
// The version is now formatted as YYYYMMDDHHMMSS so files sort by age.
func Create(dir, name, description string, now time.Time) (*Pair, error) {
	slug := Slug(name)
	if slug == "" {
		return nil, errors.New("migration name must contain letters or digits")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	version := now.UTC().Format("20060102150405")
	base := filepath.Join(dir, version+"_"+slug)
	pair := &Pair{Version: version, UpPath: base + ".up.sql", DownPath: base + ".down.sql"}

	if err := writeFile(pair.UpPath, name, description, false); err != nil {
		return nil, err
	}
	if err := writeFile(pair.DownPath, name, description, true); err != nil {
		_ = os.Remove(pair.UpPath)
		return nil, err
	}
	return pair, nil
}

func writeFile(path, name, description string, rollback bool) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	return fileTemplate.Execute(f, map[string]any{
		"Name":        name,
		"Description": description,
		"Rollback":    rollback,
	})
}

// Slug lower-cases name and joins its alphanumeric runs with underscores
func Slug(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, w)
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, "_")
}

// List returns the base names of the up files in dir, oldest first. A
// missing directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok && !e.IsDir() {
			names = append(names, base)
		}
	}
	slices.Sort(names)
	return names, nil
}
