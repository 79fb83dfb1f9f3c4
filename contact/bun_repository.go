package contact

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed contact repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type contactStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ContactRepository using Bun.
type Repository struct {
	contactStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default contact repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("contact: db or repository required")
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
		contactStore: repo,
		db:           cfg.DB,
		clock:        clock,
		idGen:        idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ContactRepository        = (*Repository)(nil)
)

// CreateContact inserts a contact owned by contact.UserID.
func (r *Repository) CreateContact(ctx context.Context, contact types.Contact) (*types.Contact, error) {
	if contact.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	rec := fromDomain(contact)
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.clock.Now()
	}
	rec.UpdatedAt = rec.CreatedAt
	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// UpdateContact overwrites the stored contact and bumps UpdatedAt.
func (r *Repository) UpdateContact(ctx context.Context, contact types.Contact) (*types.Contact, error) {
	if contact.ID == uuid.Nil {
		return nil, types.ErrContactNotFound
	}
	rec := fromDomain(contact)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// DeleteContact removes a single contact.
func (r *Repository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	rec, err := r.Get(ctx, selectID(id))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return types.ErrContactNotFound
		}
		return err
	}
	return r.Delete(ctx, rec)
}

// DeleteContactsByUser removes every contact owned by userID.
func (r *Repository) DeleteContactsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if r.db == nil {
		return 0, errors.New("contact: delete requires bun DB")
	}
	if userID == uuid.Nil {
		return 0, types.ErrUserIDRequired
	}
	res, err := r.db.NewDelete().
		Model((*Record)(nil)).
		Where("user_id = ?", userID.String()).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return deletedRows(res)
}

// GetContact returns the contact with id, or nil when it does not exist.
func (r *Repository) GetContact(ctx context.Context, id uuid.UUID) (*types.Contact, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.findOne(ctx, selectID(id))
}

// FindContactByPhone matches phone exactly. A zero userID searches every
// owner and returns the earliest match.
func (r *Repository) FindContactByPhone(ctx context.Context, userID uuid.UUID, phone string) (*types.Contact, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	return r.findOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = applyContactFilter(q, types.ContactFilter{UserID: userID, Phone: phone})
		return applyContactOrder(q, nil).Limit(1)
	})
}

// ListContacts returns every matching contact ordered by creation.
func (r *Repository) ListContacts(ctx context.Context, filter types.ContactFilter) ([]types.Contact, error) {
	if r.db == nil {
		return nil, errors.New("contact: list requires bun DB")
	}
	var rows []*Record
	q := r.db.NewSelect().Model(&rows)
	q = applyContactFilter(q, filter)
	q = applyContactOrder(q, nil)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// PageContacts returns one page of matching contacts together with totals.
func (r *Repository) PageContacts(ctx context.Context, filter types.ContactFilter, page types.PageSpec) (types.Page[types.Contact], error) {
	page = page.Normalize(types.DefaultPageSize, types.MaxPageSize)
	rows, total, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = applyContactFilter(q, filter)
		return applyContactOrder(q, page.Sort).
			Limit(page.Size).
			Offset(page.Offset())
	})
	if err != nil {
		return types.Page[types.Contact]{}, err
	}
	return types.NewPage(toDomainList(rows), total, page), nil
}

func (r *Repository) findOne(ctx context.Context, criteria repository.SelectCriteria) (*types.Contact, error) {
	rec, err := r.Get(ctx, criteria)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

func deletedRows(res sql.Result) (int, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
