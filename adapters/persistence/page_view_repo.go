package persistence

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type postgresPageViewRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPageViewRepo(db *pgxpool.Pool, logger logger.Logger) analytics.Repository {
	return &postgresPageViewRepo{db: db, logger: logger}
}

var psqlViews = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresPageViewRepo) AddView(ctx context.Context, ev analytics.ViewEvent) (bool, error) {
	markQuery, markArgs, err := psqlViews.Insert("view_events").
		Columns("event_id", "viewed_at").
		Values(ev.EventID, ev.ViewedAt).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, apperror.NewInternal("failed to build view event insert", err)
	}
	rollupQuery, rollupArgs, err := psqlViews.Insert("page_views").
		Columns("day", "path", "views").
		Values(ev.Day(), ev.Path, 1).
		Suffix("ON CONFLICT (day, path) DO UPDATE SET views = page_views.views + EXCLUDED.views").
		ToSql()
	if err != nil {
		return false, apperror.NewInternal("failed to build page view upsert", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, apperror.NewInternal("failed to begin page view transaction", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, markQuery, markArgs...)
	if err != nil {
		return false, apperror.NewInternal("failed to record view event", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, rollupQuery, rollupArgs...); err != nil {
		return false, apperror.NewInternal("failed to upsert page view", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, apperror.NewInternal("failed to commit page view", err)
	}
	return true, nil
}

func (r *postgresPageViewRepo) ListRange(ctx context.Context, from, to time.Time) ([]analytics.DailyViews, error) {
	query, args, err := psqlViews.Select("day", "path", "views").
		From("page_views").
		Where(sq.GtOrEq{"day": from}).
		Where(sq.LtOrEq{"day": to}).
		OrderBy("day DESC", "path ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build page view query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query page views", err)
	}
	defer rows.Close()

	out := make([]analytics.DailyViews, 0)
	for rows.Next() {
		var d analytics.DailyViews
		if err := rows.Scan(&d.Day, &d.Path, &d.Views); err != nil {
			return nil, apperror.NewInternal("failed to scan page view", err)
		}
		d.Day = d.Day.UTC()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating page views", err)
	}
	return out, nil
}
