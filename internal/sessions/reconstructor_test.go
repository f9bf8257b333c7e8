package sessions

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/IvanShishkin/treelens/pkg/models"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func defaultOptions() Options {
	return Options{Gap: 4 * time.Hour, MinFiles: 3}
}

func TestReconstructEmpty(t *testing.T) {
	got := Reconstruct(nil, defaultOptions())
	if got == nil || len(got) != 0 {
		t.Errorf("Reconstruct(nil) = %#v, want empty slice", got)
	}
}

func TestReconstructGapSplitsSessions(t *testing.T) {
	events := []Event{
		{"c.md", at(10, 10)},
		{"a.md", at(10, 0)},
		{"b.md", at(10, 5)},
		{"late.md", at(16, 0)},
	}

	got := Reconstruct(events, defaultOptions())
	if len(got) != 1 {
		t.Fatalf("Reconstruct() = %d sessions, want 1", len(got))
	}
	s := got[0]
	if !s.StartTime.Equal(at(10, 0)) || !s.EndTime.Equal(at(10, 10)) {
		t.Errorf("session = %v - %v, want 10:00 - 10:10", s.StartTime, s.EndTime)
	}
	if s.FileCount != 3 {
		t.Errorf("FileCount = %d, want 3", s.FileCount)
	}
	if s.DurationMinutes != 10 {
		t.Errorf("DurationMinutes = %v, want 10", s.DurationMinutes)
	}
	if !reflect.DeepEqual(s.SamplePaths, []string{"a.md", "b.md", "c.md"}) {
		t.Errorf("SamplePaths = %v", s.SamplePaths)
	}
}

func TestReconstructGapBoundary(t *testing.T) {
	// A gap of exactly the threshold does not split
	events := []Event{
		{"a", at(0, 0)}, {"b", at(1, 0)}, {"c", at(5, 0)},
	}
	got := Reconstruct(events, defaultOptions())
	if len(got) != 1 || got[0].FileCount != 3 {
		t.Errorf("Reconstruct() = %+v, want one session of 3", got)
	}

	events = append(events[:2], Event{"c", at(5, 1)})
	if got := Reconstruct(events, defaultOptions()); len(got) != 0 {
		t.Errorf("Reconstruct() = %+v, want split and discarded", got)
	}
}

func TestReconstructOrderingAndInvariants(t *testing.T) {
	var events []Event
	for s := 0; s < 4; s++ {
		base := s * 10
		for i := 0; i < 3+s; i++ {
			events = append(events, Event{fmt.Sprintf("s%d/f%d", s, i), at(base, i*20)})
		}
	}
	// A lone event between sessions is discarded, not merged
	events = append(events, Event{"lone", at(5, 0)})

	got := Reconstruct(events, defaultOptions())
	if len(got) != 4 {
		t.Fatalf("Reconstruct() = %d sessions, want 4", len(got))
	}

	for i, s := range got {
		if s.FileCount < 3 {
			t.Errorf("session %d has %d files", i, s.FileCount)
		}
		if len(s.SamplePaths) > DefaultSampleSize {
			t.Errorf("session %d has %d samples", i, len(s.SamplePaths))
		}
		if i > 0 && !got[i-1].StartTime.After(s.EndTime) {
			t.Errorf("sessions %d and %d overlap or are out of order", i-1, i)
		}
	}
	if got[0].FileCount != 6 {
		t.Errorf("most recent session has %d files, want 6", got[0].FileCount)
	}
}

func TestReconstructLimitAndSamples(t *testing.T) {
	var events []Event
	for s := 0; s < 3; s++ {
		for i := 0; i < 8; i++ {
			events = append(events, Event{fmt.Sprintf("s%d-%d", s, i), at(s*12, i)})
		}
	}

	got := Reconstruct(events, Options{Gap: 4 * time.Hour, MinFiles: 3, Limit: 2, SampleSize: 2})
	if len(got) != 2 {
		t.Fatalf("Reconstruct() = %d sessions, want 2", len(got))
	}
	if !got[0].StartTime.Equal(at(24, 0)) {
		t.Errorf("first session starts %v, want most recent", got[0].StartTime)
	}
	if len(got[0].SamplePaths) != 2 {
		t.Errorf("SamplePaths = %v, want 2 entries", got[0].SamplePaths)
	}
}

func TestReconstructDoesNotMutateInput(t *testing.T) {
	events := []Event{{"b", at(2, 0)}, {"a", at(1, 0)}}
	Reconstruct(events, defaultOptions())
	if events[0].Path != "b" {
		t.Error("input slice was reordered")
	}
}

func TestBuildTimeline(t *testing.T) {
	files := []models.FileRecord{
		{RelativePath: "a", ModifiedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{RelativePath: "b", ModifiedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
		{RelativePath: "c", ModifiedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	tl := BuildTimeline(files)
	if !reflect.DeepEqual(tl.MonthlyActivity, map[string]int{"2024-01": 2, "2024-03": 1}) {
		t.Errorf("MonthlyActivity = %v", tl.MonthlyActivity)
	}
	if !tl.FirstActivity.Equal(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FirstActivity = %v", tl.FirstActivity)
	}
	if tl.ProjectAgeDays != 61 {
		t.Errorf("ProjectAgeDays = %d, want 61", tl.ProjectAgeDays)
	}

	empty := BuildTimeline(nil)
	if empty.FirstActivity != nil || len(empty.MonthlyActivity) != 0 {
		t.Errorf("BuildTimeline(nil) = %+v", empty)
	}
}
