package activity

import (
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// sortColumns whitelists the sort fields callers may request.
var sortColumns = map[string]string{
	"id":        "id",
	"timestamp": "created_at",
	"createdAt": "created_at",
	"action":    "action",
	"userId":    "user_id",
}

func applyActivityFilter(q *bun.SelectQuery, filter types.ActivityFilter) *bun.SelectQuery {
	if filter.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if actions := actionStrings(filter.Actions); len(actions) > 0 {
		q = q.Where("action IN (?)", bun.In(actions))
	}
	return q
}

// applyActivityOrder defaults to insertion order. Ids are UUIDv7, so id is a
// stable tiebreaker for rows sharing a timestamp.
func applyActivityOrder(q *bun.SelectQuery, sort *types.SortSpec) *bun.SelectQuery {
	if sort == nil {
		return q.OrderExpr("created_at ASC, id ASC")
	}
	column, ok := sortColumns[sort.Field]
	if !ok {
		return q.OrderExpr("created_at ASC, id ASC")
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}
	if column == "id" {
		return q.OrderExpr("id " + dir)
	}
	return q.OrderExpr(column + " " + dir + ", id " + dir)
}

func actionStrings(actions []types.Action) []string {
	if len(actions) == 0 {
		return nil
	}
	out := make([]string, 0, len(actions))
	for _, action := range actions {
		if action != "" {
			out = append(out, string(action))
		}
	}
	return out
}

func toLogEntry(entry types.ActivityEntry) *LogEntry {
	return &LogEntry{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    string(entry.Action),
		Details:   entry.Details,
		CreatedAt: entry.Timestamp,
	}
}

func toActivityEntry(row *LogEntry) types.ActivityEntry {
	if row == nil {
		return types.ActivityEntry{}
	}
	return types.ActivityEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		Action:    types.Action(row.Action),
		Details:   row.Details,
		Timestamp: row.CreatedAt,
	}
}

func toActivityEntries(rows []*LogEntry) []types.ActivityEntry {
	out := make([]types.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, toActivityEntry(row))
	}
	return out
}
