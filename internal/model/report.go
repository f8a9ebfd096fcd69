package model

import "time"

// Report is the result of one facultyscan run.
// It is filled in by the pipeline steps and rendered by the report writers.
//
// Design decision: We use a single flat struct rather than nesting the
// crawl outcome and the extraction outcome. A run is small, and the writers
// and the JSON output read more simply from one level.
type Report struct {
	// === Run ===

	// SeedURL is where the crawl started. Empty when records came from
	// stored pages or local files.
	SeedURL string `json:"seed_url,omitempty"`

	// Source describes where the extracted page came from: a URL, a
	// stored page, or a list of files.
	Source string `json:"source,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last step returned.
	FinishedAt time.Time `json:"finished_at"`

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// === Crawl ===

	// CrawlState is the terminal crawl state ("found", "exhausted",
	// "cancelled"); empty when no crawl ran.
	CrawlState string `json:"crawl_state,omitempty"`

	// TargetURL is the URL of the page the records were extracted from.
	TargetURL string `json:"target_url,omitempty"`

	// Visited lists the URLs whose visit completed, in BFS order.
	Visited []string `json:"visited,omitempty"`

	// Failed lists the URLs that could not be used.
	Failed []string `json:"failed,omitempty"`

	// PagesFetched is the number of pages downloaded and stored.
	PagesFetched int `json:"pages_fetched"`

	// Discarded is the number of queued URLs dropped once the target was found.
	Discarded int `json:"discarded"`

	// === Records ===

	// Records are the extracted faculty records in page order.
	Records []FacultyRecord `json:"records"`

	// Stored is true when Records replaced the record store contents.
	Stored bool `json:"stored"`

	// TimedOut indicates the run was cancelled before completion.
	TimedOut bool `json:"timed_out"`

	// Error is the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as a string for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewReport creates an empty report for a run starting now.
func NewReport(seedURL string) *Report {
	return &Report{
		SeedURL:        seedURL,
		StartedAt:      time.Now(),
		PerformedSteps: make([]string, 0),
		Records:        make([]FacultyRecord, 0),
	}
}

// TargetFound reports whether the run found a page to extract from.
func (r *Report) TargetFound() bool {
	return r.TargetURL != ""
}

// Duration is the wall-clock time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
