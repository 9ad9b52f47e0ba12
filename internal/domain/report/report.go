package report

import (
	"fmt"
	"time"
)

// MaxPeriodDays caps the report window.
const MaxPeriodDays = 365

var Types = []string{"summary", "detailed", "analytics", "performance", "usage", "custom"}

var Formats = []string{"pdf", "excel", "csv", "json", "html"}

func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

func ValidFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

type Report struct {
	ID        int64
	OwnerID   int64
	ProjectID int64
	Name      string
	Type      string
	Format    string
	StartDate time.Time
	EndDate   time.Time
	Filters   map[string]any
	CreatedAt time.Time
}

func New(ownerID, projectID int64, reportType, format string, start, end time.Time, filters map[string]any, now time.Time) *Report {
	return &Report{
		OwnerID:   ownerID,
		ProjectID: projectID,
		Name:      buildName(reportType, start, end),
		Type:      reportType,
		Format:    format,
		StartDate: start,
		EndDate:   end,
		Filters:   filters,
		CreatedAt: now,
	}
}

func buildName(reportType string, start, end time.Time) string {
	return fmt.Sprintf("%s report %s to %s", reportType, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
