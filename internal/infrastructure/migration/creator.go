package migration

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/gosimple/slug"
)

var fileTemplate = template.Must(template.New("migration").Parse(`-- {{.Version}}_{{.Name}} ({{.Direction}})
-- Created: {{.Created}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`))

// File describes a created migration pair
type File struct {
	Version  uint
	Name     string
	UpPath   string
	DownPath string
}

// Create writes the next numbered up/down pair into dir
func Create(dir, name, description string) (*File, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := List(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	var version uint = 1
	if n := len(existing); n > 0 {
		version = existing[n-1].Version + 1
	}

	prefix := fmt.Sprintf("%06d_%s", version, base)
	f := &File{
		Version:  version,
		Name:     base,
		UpPath:   filepath.Join(dir, prefix+".up.sql"),
		DownPath: filepath.Join(dir, prefix+".down.sql"),
	}

	created := time.Now().UTC().Format(time.RFC3339)
	if err := writeFile(f.UpPath, f, "up", description, created); err != nil {
		return nil, err
	}
	if err := writeFile(f.DownPath, f, "down", description, created); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, err
	}
	return f, nil
}

func writeFile(path string, f *File, direction, description, created string) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	return fileTemplate.Execute(out, map[string]any{
		"Version":     fmt.Sprintf("%06d", f.Version),
		"Name":        f.Name,
		"Direction":   direction,
		"Created":     created,
		"Description": description,
	})
}

// sanitizeName turns a free-form name into snake_case ascii
func sanitizeName(name string) string {
	return strings.ReplaceAll(slug.Make(strings.ReplaceAll(name, "_", " ")), "-", "_")
}

// Entry is one migration found in a source
type Entry struct {
	Version uint
	Name    string
}

// List returns the up migrations in fsys ordered by version
func List(fsys fs.FS) ([]Entry, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	entries := make([]Entry, 0, len(names))
	for _, n := range names {
		versionPart, rest, ok := strings.Cut(strings.TrimSuffix(n, ".up.sql"), "_")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(versionPart, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Version: uint(v), Name: rest})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.Version < b.Version:
			return -1
		case a.Version > b.Version:
			return 1
		}
		return 0
	})
	return entries, nil
}
