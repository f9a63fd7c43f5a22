// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/chatstat/chatstat/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides the headline numbers.
	Summary Summary `json:"summary"`

	// Statistics holds every report section.
	Statistics *analyzer.Result `json:"statistics"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary provides the headline numbers.
type Summary struct {
	Messages     int    `json:"messages"`
	Words        int    `json:"words"`
	Media        int    `json:"media"`
	Links        int    `json:"links"`
	Participants int    `json:"participants"`
	FirstDate    string `json:"first_date,omitempty"`
	LastDate     string `json:"last_date,omitempty"`
	MostActive   string `json:"most_active,omitempty"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// ConfigFile is the path to the configuration file used.
	ConfigFile string `json:"config_file,omitempty"`

	// Sources lists the export files that were analyzed.
	Sources []string `json:"sources"`

	// User is the participant the report is limited to, if any.
	User string `json:"user,omitempty"`

	// TimeRange is the time filter that was applied, if any.
	TimeRange *TimeRange `json:"time_range,omitempty"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration_ns"`
}

// TimeRange represents a time window for filtering.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewReport creates a Report from analysis results.
func NewReport(result *analyzer.Result, configFile string, sources []string) *Report {
	report := &Report{
		Statistics: result,
		Metadata: Metadata{
			ConfigFile: configFile,
			Sources:    sources,
			User:       result.Metadata.User,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
		Summary: Summary{
			Messages:     result.Overview.Messages,
			Words:        result.Overview.Words,
			Media:        result.Overview.Media,
			Links:        result.Overview.Links,
			Participants: result.Summary.Participants,
			FirstDate:    result.Summary.FirstDate,
			LastDate:     result.Summary.LastDate,
			MostActive:   result.Summary.MostActive,
		},
	}

	if result.Metadata.TimeRange != nil {
		report.Metadata.TimeRange = &TimeRange{
			Start: result.Metadata.TimeRange.Start,
			End:   result.Metadata.TimeRange.End,
		}
	}

	return report
}

// IsEmpty returns true if no message fell inside the filters.
func (r *Report) IsEmpty() bool {
	return r.Summary.Messages == 0
}
