package request

import "time"

type GenerateReportRequest struct {
	Type      string         `json:"type" binding:"required"`
	Format    string         `json:"format" binding:"required"`
	StartDate string         `json:"start_date" binding:"required"`
	EndDate   string         `json:"end_date" binding:"required"`
	Filters   map[string]any `json:"filters"`
}

// ParseDates accepts plain dates; a bad value comes back zero and the
// command validation reports it.
func (r GenerateReportRequest) ParseDates() (start, end time.Time) {
	start, _ = time.Parse("2006-01-02", r.StartDate)
	end, _ = time.Parse("2006-01-02", r.EndDate)
	return start, end
}
