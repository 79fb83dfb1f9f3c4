package directory

import (
	"strings"

	"github.com/goliatone/go-contacts/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var sortColumns = map[string]string{
	"id":        "u.id",
	"username":  "u.username",
	"email":     "u.email",
	"name":      "u.name",
	"role":      "u.role",
	"status":    "u.status",
	"createdAt": "u.created_at",
	"updatedAt": "u.updated_at",
}

func selectID(id uuid.UUID) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("u.id = ?", id.String())
	}
}

// withContactCount selects the row plus the number of contacts it owns.
func withContactCount(q *bun.SelectQuery) *bun.SelectQuery {
	return q.ColumnExpr("u.*").
		ColumnExpr("(SELECT COUNT(*) FROM contacts AS c WHERE c.user_id = u.id) AS contact_count")
}

func applyUserFilter(q *bun.SelectQuery, filter types.UserFilter) *bun.SelectQuery {
	if filter.Role != "" {
		q = q.Where("u.role = ?", string(filter.Role))
	}
	return q
}

func applyUserOrder(q *bun.SelectQuery, sort *types.SortSpec) *bun.SelectQuery {
	column, ok := "", false
	if sort != nil {
		column, ok = sortColumns[sort.Field]
	}
	if !ok {
		return q.OrderExpr("u.created_at ASC, u.id ASC")
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	if column == "u.id" {
		return q.OrderExpr("u.id " + dir)
	}
	return q.OrderExpr(column + " " + dir + ", u.id " + dir)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fromDomain(user types.User) *Record {
	return &Record{
		ID:            user.ID,
		Username:      strings.TrimSpace(user.Username),
		Email:         normalizeEmail(user.Email),
		PasswordHash:  user.PasswordHash,
		Name:          strings.TrimSpace(user.Name),
		Role:          string(user.Role),
		Status:        string(user.Status),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		DeactivatedAt: user.DeactivatedAt,
		DeactivatedBy: user.DeactivatedBy,
	}
}

func toDomain(rec *Record) *types.User {
	if rec == nil {
		return nil
	}
	return &types.User{
		ID:            rec.ID,
		Username:      rec.Username,
		Email:         rec.Email,
		PasswordHash:  rec.PasswordHash,
		Name:          rec.Name,
		Role:          types.Role(rec.Role),
		Status:        types.UserStatus(rec.Status),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		DeactivatedAt: rec.DeactivatedAt,
		DeactivatedBy: rec.DeactivatedBy,
		ContactCount:  rec.ContactCount,
	}
}

func toDomainList(rows []*Record) []types.User {
	out := make([]types.User, 0, len(rows))
	for _, rec := range rows {
		if user := toDomain(rec); user != nil {
			out = append(out, *user)
		}
	}
	return out
}
