package models

import "time"

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ISODate is a calendar date in ISO-8601 (YYYY-MM-DD) form, the wire format
// of every date-only field on the platform API. Lexicographic order matches
// chronological order, which the schedule aggregations rely on.
type ISODate string

// Time parses the date at midnight UTC.
func (d ISODate) Time() (time.Time, error) {
	return time.Parse("2006-01-02", string(d))
}

// IsZero reports whether the date is unset.
func (d ISODate) IsZero() bool {
	return d == ""
}

// After reports whether d falls strictly after other.
func (d ISODate) After(other ISODate) bool {
	return string(d) > string(other)
}
