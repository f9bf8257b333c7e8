package models

import "time"

// WorkSession is a burst of contiguous file modification activity
type WorkSession struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	FileCount       int       `json:"file_count"`
	DurationMinutes float64   `json:"duration_minutes"`
	SamplePaths     []string  `json:"sample_paths"`
}

// ActivityTimeline summarizes modification activity over the project lifetime
type ActivityTimeline struct {
	MonthlyActivity map[string]int `json:"monthly_activity"` // YYYY-MM -> modified files
	FirstActivity   *time.Time     `json:"first_activity,omitempty"`
	LastActivity    *time.Time     `json:"last_activity,omitempty"`
	ProjectAgeDays  int            `json:"project_age_days"`
}
