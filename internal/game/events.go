package game

import "time"

type EventKind uint8

const (
	EventShotLaunched EventKind = iota + 1
	EventRimHit
	EventScored
	EventMissed
	EventAnnounce
	EventShotReset
	EventShotAborted
	EventSessionOver
)

func (k EventKind) String() string {
	switch k {
	case EventShotLaunched:
		return "launched"
	case EventRimHit:
		return "rim"
	case EventScored:
		return "scored"
	case EventMissed:
		return "missed"
	case EventAnnounce:
		return "announce"
	case EventShotReset:
		return "reset"
	case EventShotAborted:
		return "aborted"
	case EventSessionOver:
		return "over"
	default:
		return "unknown"
	}
}

// Event is produced by the session for collaborators (HUD, audio, network).
type Event struct {
	Kind     EventKind     `json:"kind" msgpack:"kind"`
	Result   ShotResult    `json:"result,omitempty" msgpack:"result,omitempty"`
	Score    int           `json:"score" msgpack:"score"`
	Text     string        `json:"text,omitempty" msgpack:"text,omitempty"`
	Duration time.Duration `json:"duration,omitempty" msgpack:"duration,omitempty"`
}

// DurationMs is the announcement display time in milliseconds.
func (e Event) DurationMs() int64 {
	return e.Duration.Milliseconds()
}
