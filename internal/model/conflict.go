package model

import "time"

// Severity grades a detected conflict.
type Severity string

// Conflict severities.
const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Conflict types.
const (
	ConflictMutuallyExclusive = "Mutually Exclusive Shifts"
	ConflictDuplicateEntry    = "Duplicate Shift Entry"
)

// Conflict is one detected scheduling conflict for a person on a date.
type Conflict struct {
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Type        string    `json:"conflict_type"`
	Description string    `json:"description"`
	Shifts      []string  `json:"shifts_involved"`
	Severity    Severity  `json:"severity"`
}

// AnnotatedRecord is a source record flagged with the conflicts it takes part
// in, suitable for the per-person table views.
type AnnotatedRecord struct {
	Record
	HasConflict   bool   `json:"has_conflict"`
	ConflictTypes string `json:"conflict_types"`
}
