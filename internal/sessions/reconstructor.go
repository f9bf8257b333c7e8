package sessions

import (
	"math"
	"sort"
	"time"

	"github.com/IvanShishkin/treelens/pkg/models"
)

// DefaultSampleSize bounds the sample paths kept per session
const DefaultSampleSize = 5

// Event is a single file modification
type Event struct {
	Path       string
	ModifiedAt time.Time
}

// Options control session reconstruction
type Options struct {
	Gap        time.Duration // a larger gap between consecutive events closes the session
	MinFiles   int           // sessions with fewer events are dropped
	Limit      int           // most recent sessions kept, 0 keeps all
	SampleSize int           // sample paths per session, DefaultSampleSize when 0
}

// EventsFromFiles turns file records into modification events
func EventsFromFiles(files []models.FileRecord) []Event {
	events := make([]Event, len(files))
	for i, f := range files {
		events[i] = Event{Path: f.RelativePath, ModifiedAt: f.ModifiedAt}
	}
	return events
}

// Reconstruct groups events into work sessions and returns them most recent first.
// Events are sorted by time, ties by path. A session ends when the next event
// is more than opts.Gap after the previous one.
func Reconstruct(events []Event, opts Options) []models.WorkSession {
	sessions := make([]models.WorkSession, 0)
	if len(events) == 0 {
		return sessions
	}

	sampleSize := opts.SampleSize
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].ModifiedAt.Equal(sorted[j].ModifiedAt) {
			return sorted[i].ModifiedAt.Before(sorted[j].ModifiedAt)
		}
		return sorted[i].Path < sorted[j].Path
	})

	var current *models.WorkSession
	flush := func() {
		if current != nil && current.FileCount >= opts.MinFiles {
			minutes := current.EndTime.Sub(current.StartTime).Minutes()
			current.DurationMinutes = math.Round(minutes*100) / 100
			sessions = append(sessions, *current)
		}
		current = nil
	}

	for _, ev := range sorted {
		if current != nil && ev.ModifiedAt.Sub(current.EndTime) > opts.Gap {
			flush()
		}
		if current == nil {
			current = &models.WorkSession{StartTime: ev.ModifiedAt, SamplePaths: []string{}}
		}
		current.EndTime = ev.ModifiedAt
		current.FileCount++
		if len(current.SamplePaths) < sampleSize {
			current.SamplePaths = append(current.SamplePaths, ev.Path)
		}
	}
	flush()

	// Most recent first
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	if opts.Limit > 0 && len(sessions) > opts.Limit {
		sessions = sessions[:opts.Limit]
	}
	return sessions
}
