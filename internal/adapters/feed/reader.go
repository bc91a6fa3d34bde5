package feed

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const maxScanTokenSize = 4 * 1024 * 1024

// KindOf classifies a unit path by filename. Article metadata units carry
// "meta" somewhere in their base name
func KindOf(path string) Kind {
	if strings.Contains(strings.ToLower(filepath.Base(path)), "meta") {
		return KindArticles
	}
	return KindComments
}

// IsUnit reports whether path looks like a feed unit (.txt or .txt.gz)
func IsUnit(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".txt.gz")
}

// ListUnits returns the unit files directly under dir in lexicographic
// order. Subdirectories and non-unit files are ignored
func ListUnits(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var units []string
	for _, e := range entries {
		if e.IsDir() || !IsUnit(e.Name()) {
			continue
		}
		units = append(units, filepath.Join(dir, e.Name()))
	}
	sort.Strings(units)
	return units, nil
}

// Reader streams parsed rows from one unit file. Lines that do not parse
// are counted and skipped
type Reader struct {
	f       *os.File
	gz      *gzip.Reader
	sc      *bufio.Scanner
	err     error
	rows    int
	skipped int
}

// Open opens a unit file, transparently decompressing .gz
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var src io.Reader = f
	var gz *gzip.Reader
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err = gzip.NewReader(f)
		if err != nil {
			if cerr := f.Close(); cerr != nil {
				return nil, cerr
			}
			return nil, err
		}
		src = gz
	}
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), maxScanTokenSize)
	return &Reader{f: f, gz: gz, sc: sc}, nil
}

// NextComment reads the next well-formed comment row; io.EOF when done
func (rd *Reader) NextComment() (CommentRow, error) {
	for {
		fields, err := rd.next()
		if err != nil {
			return CommentRow{}, err
		}
		if len(fields) != 6 {
			rd.skipped++
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			rd.skipped++
			continue
		}
		at, ok := parseStamp(fields[4])
		if !ok {
			rd.skipped++
			continue
		}
		rd.rows++
		return CommentRow{
			Region:      strings.TrimSpace(fields[0]),
			ArticleID:   id,
			Nickname:    fields[2],
			IPHash:      strings.TrimSpace(fields[3]),
			CommentedAt: at,
			Body:        fields[5],
		}, nil
	}
}

// NextArticle reads the next well-formed article row; io.EOF when done
func (rd *Reader) NextArticle() (ArticleRow, error) {
	for {
		fields, err := rd.next()
		if err != nil {
			return ArticleRow{}, err
		}
		if len(fields) != 5 {
			rd.skipped++
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			rd.skipped++
			continue
		}
		at, ok := parseStamp(fields[3])
		if !ok {
			rd.skipped++
			continue
		}
		rd.rows++
		return ArticleRow{
			Region:      strings.TrimSpace(fields[0]),
			ArticleID:   id,
			Headline:    fields[2],
			PublishedAt: at,
			URL:         strings.TrimSpace(fields[4]),
		}, nil
	}
}

// next returns the tab-split fields of the next non-empty line
func (rd *Reader) next() ([]string, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	for {
		if !rd.sc.Scan() {
			if err := rd.sc.Err(); err != nil {
				rd.err = err
				return nil, err
			}
			rd.err = io.EOF
			return nil, io.EOF
		}
		line := strings.TrimRight(rd.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return strings.Split(line, "\t"), nil
	}
}

// Stats reports how many rows parsed and how many lines were skipped
func (rd *Reader) Stats() (rows, skipped int) { return rd.rows, rd.skipped }

// Close closes the underlying file and gzip stream
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		if err := rd.gz.Close(); err != nil {
			first = err
		}
	}
	if rd.f != nil {
		if err := rd.f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// feed timestamps come in a handful of shapes depending on the exporter
var stampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseStamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range stampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
