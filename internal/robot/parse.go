package robot

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Stats counts how the lines of one input were handled.
type Stats struct {
	Lines     int `json:"lines"`
	Decoded   int `json:"decoded"`
	Empty     int `json:"empty"`
	NoTag     int `json:"no_tag"`
	Unknown   int `json:"unknown"`
	Malformed int `json:"malformed"`
}

// Rejected returns the number of non-empty lines that did not decode.
func (s Stats) Rejected() int {
	return s.NoTag + s.Unknown + s.Malformed
}

func (s *Stats) observe(err error) {
	s.Lines++
	switch {
	case err == nil:
		s.Decoded++
	case errors.Is(err, ErrEmptyLine):
		s.Empty++
	case errors.Is(err, ErrNoDelimiter):
		s.NoTag++
	case errors.Is(err, ErrUnknownType):
		s.Unknown++
	default:
		s.Malformed++
	}
}

// DecodeAll decodes every line of input, dropping rejected lines.
func DecodeAll(input string) ([]Record, Stats) {
	var (
		records []Record
		stats   Stats
	)
	if input == "" {
		return records, stats
	}
	for _, line := range strings.Split(input, "\n") {
		record, err := Decode(line)
		stats.observe(err)
		if err == nil {
			records = append(records, record)
		}
	}
	return records, stats
}

// Result bundles the decoded records of one run with their aggregated views.
type Result struct {
	Disc       *DiscInfo `json:"disc"`
	Messages   []Message `json:"messages,omitempty"`
	Drives     []Drive   `json:"drives,omitempty"`
	TitleCount int       `json:"title_count"`
	// HasTitleCount is false when the output carried no TCOUT line.
	HasTitleCount bool     `json:"has_title_count"`
	Stats         Stats    `json:"stats"`
	Records       []Record `json:"-"`
}

// Parse decodes and aggregates a complete robot transcript.
func Parse(input string) *Result {
	records, stats := DecodeAll(input)
	return build(records, stats)
}

// ParseReader is Parse over a stream, decoding line by line.
func ParseReader(r io.Reader) (*Result, error) {
	scanner := NewScanner(r)
	var records []Record
	for scanner.Scan() {
		records = append(records, scanner.Record())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return build(records, scanner.Stats()), nil
}

func build(records []Record, stats Stats) *Result {
	count, ok := TitleCountOf(records)
	return &Result{
		Disc:          Aggregate(records),
		Messages:      Messages(records),
		Drives:        Drives(records),
		TitleCount:    count,
		HasTitleCount: ok,
		Stats:         stats,
		Records:       records,
	}
}

// maxLineBytes bounds a single robot line; long TINFO segment maps on
// Blu-ray discs can exceed bufio's 64 KiB default.
const maxLineBytes = 1 << 20

// Scanner reads robot lines from an io.Reader and yields decoded records,
// silently skipping lines Decode rejects.
type Scanner struct {
	lines  *bufio.Scanner
	record Record
	stats  Stats
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Scanner{lines: lines}
}

// Scan advances to the next decodable record. It returns false at end of
// input or on a read error.
func (s *Scanner) Scan() bool {
	for s.lines.Scan() {
		record, err := Decode(s.lines.Text())
		s.stats.observe(err)
		if err == nil {
			s.record = record
			return true
		}
	}
	s.record = nil
	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() Record { return s.record }

// Stats returns the line counts observed so far.
func (s *Scanner) Stats() Stats { return s.stats }

// Err returns the first read error, if any.
func (s *Scanner) Err() error { return s.lines.Err() }
