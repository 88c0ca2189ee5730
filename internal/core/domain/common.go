package domain

import "time"

// RecordFilter selects and orders records for the support listing.
type RecordFilter struct {
	UserID        *int64
	IsPending     *bool
	BeginningDate time.Time
	EndingDate    time.Time
	OrderBy       string
	PageNumber    int
	PageSize      int
}

// RecordPage is one page of records plus the total number of matches.
type RecordPage struct {
	Records    []Record
	TotalCount int64
}
