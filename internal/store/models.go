package store

import (
	"time"

	"mkvrobot/internal/robot"
)

// Scan is one stored info run.
type Scan struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	DiscName   string    `json:"disc_name"`
	VolumeName string    `json:"volume_name"`
	TitleCount int       `json:"title_count"`
	Rejected   int       `json:"rejected_lines"`
	Raw        string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewScan summarizes an info run for storage.
func NewScan(source, raw string, result *robot.Result) Scan {
	if result == nil {
		result = robot.Parse(raw)
	}
	count := result.TitleCount
	if !result.HasTitleCount {
		count = len(result.Disc.Titles)
	}
	return Scan{
		Source:     source,
		DiscName:   result.Disc.Name(),
		VolumeName: result.Disc.VolumeName(),
		TitleCount: count,
		Rejected:   result.Stats.Rejected(),
		Raw:        raw,
	}
}

// Result re-parses the stored robot output.
func (s Scan) Result() *robot.Result {
	return robot.Parse(s.Raw)
}

// Label returns the best human readable name for the scanned disc.
func (s Scan) Label() string {
	if s.DiscName != "" {
		return s.DiscName
	}
	return s.VolumeName
}
