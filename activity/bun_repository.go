package activity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed activity repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type activityStore interface {
	repository.Repository[*LogEntry]
}

// Repository persists audit entries and exposes query helpers.
type Repository struct {
	activityStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs a repository that implements both ActivitySink
// and ActivityRepository interfaces.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("activity: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(entry *LogEntry) uuid.UUID {
				if entry == nil {
					return uuid.Nil
				}
				return entry.ID
			},
			SetID: func(entry *LogEntry, id uuid.UUID) {
				if entry != nil {
					entry.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	return &Repository{
		activityStore: repo,
		db:            cfg.DB,
		clock:         clock,
		idGen:         idGen,
	}, nil
}

var (
	_ repository.Repository[*LogEntry] = (*Repository)(nil)
	_ types.ActivitySink               = (*Repository)(nil)
	_ types.ActivityRepository         = (*Repository)(nil)
)

// Log appends an entry. Missing ids and timestamps are assigned here so the
// row is never stored without them.
func (r *Repository) Log(ctx context.Context, entry types.ActivityEntry) (*types.ActivityEntry, error) {
	row := toLogEntry(entry)
	if row.ID == uuid.Nil {
		row.ID = r.idGen.UUID()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = r.clock.Now()
	}
	created, err := r.Create(ctx, row)
	if err != nil {
		return nil, err
	}
	out := toActivityEntry(created)
	return &out, nil
}

// GetActivity returns the entry with id, or nil when it does not exist.
func (r *Repository) GetActivity(ctx context.Context, id uuid.UUID) (*types.ActivityEntry, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	row, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	out := toActivityEntry(row)
	return &out, nil
}

// ListActivity returns every matching entry in insertion order.
func (r *Repository) ListActivity(ctx context.Context, filter types.ActivityFilter) ([]types.ActivityEntry, error) {
	if r.db == nil {
		return nil, errors.New("activity: list requires bun DB")
	}
	var rows []*LogEntry
	q := r.db.NewSelect().Model(&rows)
	q = applyActivityFilter(q, filter)
	q = applyActivityOrder(q, nil)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return toActivityEntries(rows), nil
}

// PageActivity returns one page of matching entries together with totals.
func (r *Repository) PageActivity(ctx context.Context, filter types.ActivityFilter, page types.PageSpec) (types.Page[types.ActivityEntry], error) {
	page = page.Normalize(types.DefaultPageSize, types.MaxPageSize)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = applyActivityFilter(q, filter)
			return applyActivityOrder(q, page.Sort).
				Limit(page.Size).
				Offset(page.Offset())
		},
	}

	rows, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.Page[types.ActivityEntry]{}, err
	}
	return types.NewPage(toActivityEntries(rows), total, page), nil
}

// ActivityStats aggregates counts grouped by action.
func (r *Repository) ActivityStats(ctx context.Context, filter types.ActivityFilter) (types.ActivityStats, error) {
	var stats types.ActivityStats
	if r.db == nil {
		return stats, errors.New("activity: stats requires bun DB")
	}
	query := r.db.NewSelect().
		Table("activity_logs").
		ColumnExpr("action").
		ColumnExpr("COUNT(*) AS total").
		Group("action")
	query = applyActivityFilter(query, filter)

	type row struct {
		Action string `bun:"action"`
		Total  int    `bun:"total"`
	}
	var rows []row
	if err := query.Scan(ctx, &rows); err != nil {
		return stats, err
	}
	for _, rec := range rows {
		stats.Add(types.Action(rec.Action), rec.Total)
	}
	return stats, nil
}

// DeleteActivityByUser removes every entry owned by userID. It exists only for
// the explicit cascade run when a user is deleted.
func (r *Repository) DeleteActivityByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if r.db == nil {
		return 0, errors.New("activity: delete requires bun DB")
	}
	if userID == uuid.Nil {
		return 0, types.ErrUserIDRequired
	}
	res, err := r.db.NewDelete().
		Model((*LogEntry)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return deletedRows(res)
}

func deletedRows(res sql.Result) (int, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
