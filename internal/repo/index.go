package repo

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/danieljhkim/sbplan/internal/fsops"
)

// IndexEntry is one SlackBuild stanza of a repository index.
type IndexEntry struct {
	Name        string
	Category    string
	Version     string
	Requires    []string
	Description string
}

const fieldPrefix = "SLACKBUILD "

// ParseIndex parses a SLACKBUILDS.TXT index. Stanzas start with a
// "SLACKBUILD NAME:" line and are separated by blank lines.
func ParseIndex(r io.Reader) ([]IndexEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []IndexEntry
	var current *IndexEntry
	lineNo := 0

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if !strings.HasPrefix(line, fieldPrefix) {
			continue
		}
		field, value, ok := strings.Cut(strings.TrimPrefix(line, fieldPrefix), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		if field == "NAME" {
			flush()
			if value == "" {
				return nil, fmt.Errorf("%w: line %d: empty name", ErrMalformedIndex, lineNo)
			}
			current = &IndexEntry{Name: value}
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("%w: line %d: %s before any NAME", ErrMalformedIndex, lineNo, field)
		}

		switch field {
		case "LOCATION":
			current.Category = categoryOf(value)
		case "VERSION":
			current.Version = value
		case "REQUIRES":
			current.Requires = strings.Fields(value)
		case "SHORT DESC":
			current.Description = shortDesc(current.Name, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	flush()

	return entries, nil
}

// categoryOf returns "multimedia" for "./multimedia/ffmpeg".
func categoryOf(location string) string {
	dir := path.Dir(path.Clean(location))
	if dir == "." || dir == "/" {
		return ""
	}
	return path.Base(dir)
}

// shortDesc strips the "name (...)" wrapper of SHORT DESC values.
func shortDesc(name, value string) string {
	inner, ok := strings.CutPrefix(value, name+" (")
	if ok && strings.HasSuffix(inner, ")") {
		return strings.TrimSuffix(inner, ")")
	}
	return value
}

// OpenIndex opens an index file, decompressing .gz and .xz files.
func OpenIndex(fs fsops.FS, p string) (io.ReadCloser, error) {
	f, err := fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	switch path.Ext(p) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return &stackedReader{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case ".xz":
		x, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		return &stackedReader{Reader: x, closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
