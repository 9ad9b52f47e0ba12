package repository

import (
	"context"
	"log/slog"

	"universe-api/internal/domain/report"
	"universe-api/internal/infra"
	"universe-api/internal/infra/db"
	"universe-api/internal/usecase/shared"
)

type ReportRepository struct {
	dbtx   db.DBTX
	logger *slog.Logger
}

func NewReportRepository(dbtx db.DBTX, logger *slog.Logger) *ReportRepository {
	return &ReportRepository{dbtx: dbtx, logger: logger}
}

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) (int64, error) {
	var id int64
	err := r.dbtx.QueryRow(ctx, `
		INSERT INTO reports
			(owner_id, project_id, name, type, format, start_date, end_date, filters, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rep.OwnerID, rep.ProjectID, rep.Name, rep.Type, rep.Format,
		rep.StartDate, rep.EndDate, jsonbOrEmpty(rep.Filters), rep.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert report", err)
	}
	return id, nil
}

var _ shared.ReportRepository = (*ReportRepository)(nil)
