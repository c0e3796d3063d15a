package simulation

import (
	"time"

	"flightmap/pkg/types"
)

type EventKind int

const (
	ROUTE_ASSIGNED EventKind = iota
	ARRIVAL
	POPULATION
	LIFECYCLE
	WARNING
)

var EventKindStringMap = map[EventKind]string{
	ROUTE_ASSIGNED: "ROUTE",
	ARRIVAL:        "ARRIVAL",
	POPULATION:     "POPULATION",
	LIFECYCLE:      "LIFECYCLE",
	WARNING:        "WARNING",
}

func (k EventKind) String() string {
	return EventKindStringMap[k]
}

type Event struct {
	Timestamp  time.Time
	Tick       uint64
	Kind       EventKind
	AircraftID types.AircraftID
	Message    string
}

// EventLog keeps the most recent events, oldest first.
type EventLog struct {
	events  []Event
	maxSize int
}

func NewEventLog(maxSize int) *EventLog {
	if maxSize < 1 {
		maxSize = 1
	}
	return &EventLog{maxSize: maxSize}
}

func (l *EventLog) Add(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	l.events = append(l.events, e)

	if len(l.events) > l.maxSize {
		l.events = l.events[len(l.events)-l.maxSize:]
	}
}

func (l *EventLog) Events() []Event {
	cp := make([]Event, len(l.events))
	copy(cp, l.events)
	return cp
}

func (l *EventLog) Len() int {
	return len(l.events)
}
