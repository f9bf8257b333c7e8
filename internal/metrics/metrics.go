package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/IvanShishkin/treelens/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exporter holds scan gauges on a private registry
type Exporter struct {
	registry *prometheus.Registry

	files           prometheus.Gauge
	directories     prometheus.Gauge
	totalBytes      prometheus.Gauge
	duplicateGroups prometheus.Gauge
	wastedBytes     prometheus.Gauge
	workSessions    prometheus.Gauge
	healthScore     prometheus.Gauge
	inaccessible    prometheus.Gauge
	malformed       prometheus.Gauge
	duration        prometheus.Gauge
	lastScan        prometheus.Gauge
}

// NewExporter registers the scan gauges
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "treelens",
			Name:      name,
			Help:      help,
		})
	}

	return &Exporter{
		registry:        reg,
		files:           gauge("files", "Files found by the last scan"),
		directories:     gauge("directories", "Directories found by the last scan"),
		totalBytes:      gauge("total_bytes", "Total size of scanned files in bytes"),
		duplicateGroups: gauge("duplicate_groups", "Groups of files with identical content"),
		wastedBytes:     gauge("wasted_bytes", "Bytes taken by redundant duplicate copies"),
		workSessions:    gauge("work_sessions", "Reconstructed work sessions"),
		healthScore:     gauge("health_score", "Project health score from 0 to 100"),
		inaccessible:    gauge("inaccessible", "Entries that could not be read"),
		malformed:       gauge("malformed", "Files with malformed content"),
		duration:        gauge("scan_duration_seconds", "Duration of the last scan"),
		lastScan:        gauge("last_scan_timestamp_seconds", "Unix time of the last scan"),
	}
}

// Observe sets every gauge from a finished scan
func (e *Exporter) Observe(env *models.ReportEnvelope) {
	r := env.Report
	e.files.Set(float64(r.FileCount))
	e.directories.Set(float64(r.DirectoryCount))
	e.totalBytes.Set(float64(r.TotalSizeBytes))
	e.duplicateGroups.Set(float64(len(r.DuplicateGroups)))
	e.wastedBytes.Set(float64(r.TotalWastedBytes()))
	e.workSessions.Set(float64(len(r.WorkSessions)))
	e.healthScore.Set(float64(r.Insights.Health.Score))
	e.inaccessible.Set(float64(r.InaccessibleCount))
	e.malformed.Set(float64(r.MalformedCount))
	e.duration.Set(float64(env.DurationMs) / 1000)
	e.lastScan.Set(float64(env.GeneratedAt.Unix()))
}

// WriteTextfile writes the gauges in the node-exporter textfile format
func (e *Exporter) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Registry exposes the private registry
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}
