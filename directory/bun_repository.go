package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed user repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type userStore interface {
	repository.Repository[*Record]
}

// Repository implements types.UserRepository using Bun.
type Repository struct {
	userStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default user repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("directory: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
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
		userStore: repo,
		db:        cfg.DB,
		clock:     clock,
		idGen:     idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.UserRepository           = (*Repository)(nil)
)

// CreateUser inserts a new account. Missing ids, timestamps, role and status
// are filled in.
func (r *Repository) CreateUser(ctx context.Context, user types.User) (*types.User, error) {
	rec := fromDomain(user)
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = rec.CreatedAt
	if rec.Role == "" {
		rec.Role = string(types.RoleUser)
	}
	if rec.Status == "" {
		rec.Status = string(types.StatusActive)
	}
	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// UpdateUser overwrites the stored account and bumps UpdatedAt.
func (r *Repository) UpdateUser(ctx context.Context, user types.User) (*types.User, error) {
	if user.ID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	rec := fromDomain(user)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	out := toDomain(updated)
	out.ContactCount = user.ContactCount
	return out, nil
}

// DeleteUser removes the account row. Dependent rows must already be gone on
// drivers that do not enforce the cascade.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return types.ErrUserIDRequired
	}
	rec, err := r.Get(ctx, selectID(id))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return types.ErrUserNotFound
		}
		return err
	}
	return r.Delete(ctx, rec)
}

// GetUser returns the account with id, or nil when it does not exist.
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.findOne(ctx, selectID(id))
}

// FindUserByUsername matches username exactly.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	return r.findOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("u.username = ?", username)
	})
}

// FindUserByEmail matches email case-insensitively.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*types.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	return r.findOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(u.email) = ?", email)
	})
}

// ListUsers returns every matching account ordered by creation.
func (r *Repository) ListUsers(ctx context.Context, filter types.UserFilter) ([]types.User, error) {
	if r.db == nil {
		return nil, errors.New("directory: list requires bun DB")
	}
	var rows []*Record
	q := r.db.NewSelect().Model(&rows)
	q = withContactCount(q)
	q = applyUserFilter(q, filter)
	q = applyUserOrder(q, nil)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// PageUsers returns one page of matching accounts together with totals.
func (r *Repository) PageUsers(ctx context.Context, filter types.UserFilter, page types.PageSpec) (types.Page[types.User], error) {
	page = page.Normalize(types.DefaultPageSize, types.MaxPageSize)
	rows, total, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = withContactCount(q)
		q = applyUserFilter(q, filter)
		return applyUserOrder(q, page.Sort).
			Limit(page.Size).
			Offset(page.Offset())
	})
	if err != nil {
		return types.Page[types.User]{}, err
	}
	return types.NewPage(toDomainList(rows), total, page), nil
}

// UserStats counts accounts by role.
func (r *Repository) UserStats(ctx context.Context) (types.UserStats, error) {
	var stats types.UserStats
	if r.db == nil {
		return stats, errors.New("directory: stats requires bun DB")
	}
	type row struct {
		Role  string `bun:"role"`
		Total int    `bun:"total"`
	}
	var rows []row
	err := r.db.NewSelect().
		Table("users").
		ColumnExpr("role").
		ColumnExpr("COUNT(*) AS total").
		Group("role").
		Scan(ctx, &rows)
	if err != nil {
		return stats, err
	}
	for _, rec := range rows {
		stats.TotalUsers += rec.Total
		if types.Role(rec.Role) == types.RoleAdmin {
			stats.AdminUsers += rec.Total
		}
	}
	stats.NonAdminUsers = stats.TotalUsers - stats.AdminUsers
	return stats, nil
}

func (r *Repository) findOne(ctx context.Context, criteria repository.SelectCriteria) (*types.User, error) {
	rec, err := r.Get(ctx, withContactCount, criteria)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}
