package store

import "time"

// View selects events relative to a reference instant. An event starting
// exactly at the reference instant is upcoming, not past.
type View int

const (
	// AllEvents ignores the reference instant and orders by start time.
	AllEvents View = iota
	// Upcoming selects events starting at or after now, soonest first.
	Upcoming
	// Past selects events starting before now, most recent first.
	Past
)

func (v View) String() string {
	switch v {
	case Upcoming:
		return "upcoming"
	case Past:
		return "past"
	default:
		return "all"
	}
}

func (v View) cond() string {
	switch v {
	case Upcoming:
		return "e.start_time >= ?"
	case Past:
		return "e.start_time < ?"
	default:
		return ""
	}
}

func (v View) order() string {
	if v == Past {
		return "e.start_time DESC, e.id DESC"
	}
	return "e.start_time, e.id"
}

// Window is a fixed-size slice of a view, used for the "current" sections of
// an organization.
type Window struct {
	View  View
	Limit int
}

// CurrentEvents is the next two events.
var CurrentEvents = Window{View: Upcoming, Limit: 2}

const (
	// CurrentProjects is the size of the most-recently-updated projects window.
	CurrentProjects = 3
	// CurrentStories is the size of the newest-stories window.
	CurrentStories = 2
)

// Reference returns the reference instant for temporal views. Event times are
// naive UTC with second precision, so now is normalized the same way.
func Reference(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Second)
}
