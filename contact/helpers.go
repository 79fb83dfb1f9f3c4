package contact

import (
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var sortColumns = map[string]string{
	"id":        "c.id",
	"name":      "c.name",
	"email":     "c.email",
	"phone":     "c.phone",
	"createdAt": "c.created_at",
	"updatedAt": "c.updated_at",
}

func selectID(id uuid.UUID) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("c.id = ?", id.String())
	}
}

func applyContactFilter(q *bun.SelectQuery, filter types.ContactFilter) *bun.SelectQuery {
	if filter.UserID != uuid.Nil {
		q = q.Where("c.user_id = ?", filter.UserID.String())
	}
	if email := strings.ToLower(strings.TrimSpace(filter.Email)); email != "" {
		q = q.Where("LOWER(c.email) = ?", email)
	}
	if phone := strings.TrimSpace(filter.Phone); phone != "" {
		q = q.Where("c.phone = ?", phone)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("c.created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		q = q.Where("c.created_at <= ?", filter.CreatedTo.UTC())
	}
	return q
}

func applyContactOrder(q *bun.SelectQuery, sort *types.SortSpec) *bun.SelectQuery {
	column, ok := "", false
	if sort != nil {
		column, ok = sortColumns[sort.Field]
	}
	if !ok {
		return q.OrderExpr("c.created_at ASC, c.id ASC")
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	if column == "c.id" {
		return q.OrderExpr("c.id " + dir)
	}
	return q.OrderExpr(column + " " + dir + ", c.id " + dir)
}

func fromDomain(contact types.Contact) *Record {
	return &Record{
		ID:        contact.ID,
		UserID:    contact.UserID,
		Name:      strings.TrimSpace(contact.Name),
		Email:     strings.TrimSpace(contact.Email),
		Phone:     strings.TrimSpace(contact.Phone),
		Address:   strings.TrimSpace(contact.Address),
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Contact {
	if rec == nil {
		return nil
	}
	return &types.Contact{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Address:   rec.Address,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func toDomainList(rows []*Record) []types.Contact {
	out := make([]types.Contact, 0, len(rows))
	for _, rec := range rows {
		if contact := toDomain(rec); contact != nil {
			out = append(out, *contact)
		}
	}
	return out
}
