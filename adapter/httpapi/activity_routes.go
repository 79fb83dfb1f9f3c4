package httpapi

import (
	"net/http"

	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
)

type activityPayload struct {
	UserID  string `json:"userId"`
	Action  string `json:"action"`
	Details string `json:"details"`
}

func (h *Handler) activityRoutes() []route {
	return []route{
		{method: http.MethodPost, path: "/create", handle: h.logActivity},
		{method: http.MethodGet, path: "/user/:userId/action/:action", handle: h.logsByAction},
		{method: http.MethodGet, path: "/user/:userId", handle: h.logsByUser},
		{method: http.MethodGet, path: "/get-all-logs/:userId", handle: h.adminLogs},
		{method: http.MethodGet, path: "/get-all-stats/:userId", handle: h.allLogStats},
		{method: http.MethodGet, path: "/stats/:userId", handle: h.userLogStats},
		{method: http.MethodGet, path: "/:userId/logs", handle: h.userLogPage},
		{method: http.MethodGet, path: "/:userId/:id", handle: h.activityDetail},
	}
}

func (h *Handler) logActivity(req request) response {
	var payload activityPayload
	if err := req.decode(&payload); err != nil {
		return fail(err, "An error occurred while logging activity")
	}
	var entry types.ActivityEntry
	err := h.commands.LogActivity.Execute(req.ctx, command.ActivityLogInput{
		UserID:  payload.UserID,
		Action:  payload.Action,
		Details: payload.Details,
		Result:  &entry,
	})
	if err != nil {
		return fail(err, "An error occurred while logging activity")
	}
	return created("Activity logged successfully", entry)
}

func (h *Handler) logsByUser(req request) response {
	entries, err := h.queries.UserLogs.Query(req.ctx, query.UserLogsInput{UserID: req.optionalID("userId")})
	if err != nil {
		return fail(err, "An error occurred while retrieving logs")
	}
	if len(entries) == 0 {
		return failure(http.StatusNotFound, "No logs found for the given user")
	}
	return ok("Logs retrieved successfully", entries)
}

func (h *Handler) logsByAction(req request) response {
	entries, err := h.queries.UserLogsByAction.Query(req.ctx, query.UserLogsByActionInput{
		UserID: req.optionalID("userId"),
		Action: req.param("action"),
	})
	if err != nil {
		return fail(err, "An error occurred while retrieving logs")
	}
	if len(entries) == 0 {
		return failure(http.StatusNotFound, "No logs found for the given user and action")
	}
	return ok("Logs retrieved successfully", entries)
}

func (h *Handler) activityDetail(req request) response {
	entry, err := h.queries.ActivityDetail.Query(req.ctx, query.ActivityDetailInput{
		UserID: req.optionalID("userId"),
		ID:     req.optionalID("id"),
		RawID:  req.param("id"),
	})
	if err != nil {
		return fail(err, "An error occurred while retrieving the activity log")
	}
	if entry == nil {
		return failure(http.StatusNotFound, "Activity log not found or unauthorized access")
	}
	return ok("Activity log retrieved successfully", entry)
}

func (h *Handler) userLogPage(req request) response {
	page, err := h.queries.UserLogPage.Query(req.ctx, query.UserLogPageInput{
		UserID: req.optionalID("userId"),
		Page:   req.page(),
	})
	if err != nil {
		return fail(err, "An error occurred while retrieving logs")
	}
	return paged("Paginated logs retrieved successfully", page)
}

func (h *Handler) adminLogs(req request) response {
	page, err := h.queries.AdminLogPage.Query(req.ctx, query.AdminLogPageInput{
		RequestedBy: req.optionalID("userId"),
		Page:        req.page(),
	})
	if err != nil {
		return fail(err, "An error occurred while retrieving admin logs")
	}
	return paged("Admin logs retrieved successfully", page)
}

func (h *Handler) userLogStats(req request) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	stats, err := h.queries.UserLogStats.Query(req.ctx, query.UserLogStatsInput{UserID: userID})
	if err != nil {
		return fail(err, "An error occurred while retrieving log statistics")
	}
	return ok("Log statistics retrieved successfully", stats)
}

func (h *Handler) allLogStats(req request) response {
	stats, err := h.queries.AdminLogStats.Query(req.ctx, query.AdminLogStatsInput{
		RequestedBy: req.optionalID("userId"),
	})
	if err != nil {
		return fail(err, "An error occurred while retrieving log statistics")
	}
	return ok("Log statistics retrieved successfully", stats)
}
