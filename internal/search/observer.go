package search

import "time"

// EventType represents the phases of a search
type EventType string

const (
	EventScanStart       EventType = "scan_start"
	EventScanEnd         EventType = "scan_end"
	EventIndexBuildStart EventType = "index_build_start"
	EventIndexBuildEnd   EventType = "index_build_end"
	EventIndexRelease    EventType = "index_release"
)

// Event represents a lifecycle event of a search
type Event struct {
	Type      EventType      // Type of event
	QueryID   string         // Query ID for tracing
	Timestamp time.Time      // When the event occurred
	Data      map[string]any // Phase-specific data (column, mode, match count, ...)
}

// Observer receives events at the major phases of every search
type Observer interface {
	OnEvent(event Event)
}
