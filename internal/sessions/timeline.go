package sessions

import (
	"github.com/IvanShishkin/treelens/pkg/models"
)

// BuildTimeline counts modified files per month and measures the project age
// from the oldest change or modification to the newest modification.
func BuildTimeline(files []models.FileRecord) models.ActivityTimeline {
	timeline := models.ActivityTimeline{MonthlyActivity: make(map[string]int)}
	if len(files) == 0 {
		return timeline
	}

	first := files[0].ModifiedAt
	last := files[0].ModifiedAt
	for _, f := range files {
		timeline.MonthlyActivity[f.ModifiedAt.Format("2006-01")]++

		if f.ModifiedAt.Before(first) {
			first = f.ModifiedAt
		}
		if !f.CreatedAt.IsZero() && f.CreatedAt.Before(first) {
			first = f.CreatedAt
		}
		if f.ModifiedAt.After(last) {
			last = f.ModifiedAt
		}
	}

	timeline.FirstActivity = &first
	timeline.LastActivity = &last
	timeline.ProjectAgeDays = int(last.Sub(first).Hours() / 24)
	return timeline
}
