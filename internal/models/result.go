package models

import "time"

// Source status constants
const (
	StatusSearched = "SEARCHED" // Source compiled and fully explored
	StatusInvalid  = "INVALID"  // Source pattern failed to compile
	StatusCanceled = "CANCELED" // Exploration stopped before the end
)

// SourceResult represents the outcome of searching a single source pattern
type SourceResult struct {
	Source     string        // Pattern as given by the user
	Status     string        // Status: "SEARCHED", "INVALID", "CANCELED"
	FilesFound int           // Number of file matches
	DirsFound  int           // Number of directory matches
	Errors     int           // Number of traversal errors
	Error      error         // Compile error for invalid sources
	Duration   time.Duration // Time spent exploring the source
}

// SearchSummary represents the aggregate result of a search run
type SearchSummary struct {
	Sources        int            // Total number of sources
	InvalidSources int            // Sources that failed to compile
	FilesFound     int            // Total file matches
	DirsFound      int            // Total directory matches
	Errors         int            // Total traversal errors
	Duration       time.Duration  // Total search time
	Results        []SourceResult // Per-source details
}

// Add folds a source result into the summary.
func (s *SearchSummary) Add(r SourceResult) {
	s.Sources++
	if r.Status == StatusInvalid {
		s.InvalidSources++
	}
	s.FilesFound += r.FilesFound
	s.DirsFound += r.DirsFound
	s.Errors += r.Errors
	s.Results = append(s.Results, r)
}

// Matches returns the number of files and directories found.
func (s *SearchSummary) Matches() int {
	return s.FilesFound + s.DirsFound
}

// AllInvalid reports whether no source could be searched.
func (s *SearchSummary) AllInvalid() bool {
	return s.Sources > 0 && s.InvalidSources == s.Sources
}
