package storage

import (
	"vacancy-reporter/models"
	"vacancy-reporter/services"
)

// TableRenderer renders a filtered/sorted/paginated query result.
type TableRenderer interface {
	Render(view *services.TableView) error
}

// ReportWriter produces one rendering of the aggregate report
// (spreadsheet, chart set or PDF document).
type ReportWriter interface {
	Write(report *models.StatsReport) error
}
