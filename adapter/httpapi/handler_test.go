package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-contacts/activity"
	"github.com/goliatone/go-contacts/contact"
	"github.com/goliatone/go-contacts/directory"
	"github.com/goliatone/go-contacts/pkg/telemetry"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/service"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestActivityEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)
	admin := h.mustCreateUser(t, "root", "ADMIN")
	member := h.mustCreateUser(t, "mia", "")

	res := h.logActivity(h.req(nil, nil, map[string]any{"userId": member.String(), "action": "login", "details": "web"}))
	require.Equal(t, http.StatusCreated, res.status)
	require.Equal(t, "Activity logged successfully", res.body.Message)
	entry := res.body.Data.(types.ActivityEntry)
	require.Equal(t, types.ActionLogin, entry.Action)

	res = h.logActivity(h.req(nil, nil, map[string]any{"userId": member.String(), "action": "jump"}))
	require.Equal(t, http.StatusBadRequest, res.status)
	require.Equal(t, "Invalid action type: jump", res.body.Message)
	require.Equal(t, statusError, res.body.Status)

	res = h.logActivity(h.req(nil, nil, map[string]any{"userId": uuid.NewString(), "action": "GET"}))
	require.Equal(t, http.StatusNotFound, res.status)

	res = h.logsByUser(h.req(map[string]string{"userId": member.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.body.Data, 2)

	res = h.logsByUser(h.req(map[string]string{"userId": "not-a-uuid"}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)
	require.Equal(t, "No logs found for the given user", res.body.Message)

	res = h.logsByAction(h.req(map[string]string{"userId": member.String(), "action": "DELETE"}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)
	require.Equal(t, "No logs found for the given user and action", res.body.Message)

	res = h.activityDetail(h.req(map[string]string{"userId": admin.String(), "id": entry.ID.String()}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)
	require.Equal(t, "Activity log not found or unauthorized access", res.body.Message)

	res = h.activityDetail(h.req(map[string]string{"userId": member.String(), "id": entry.ID.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)

	res = h.userLogPage(h.req(map[string]string{"userId": member.String()}, map[string]string{"size": "1"}, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.NotNil(t, res.body.TotalRecords)
	require.Equal(t, 3, *res.body.TotalRecords)
	require.Equal(t, 3, *res.body.TotalPages)
	require.Equal(t, 0, *res.body.CurrentPage)

	res = h.adminLogs(h.req(map[string]string{"userId": member.String()}, nil, nil))
	require.Equal(t, http.StatusForbidden, res.status)
	require.Equal(t, "Unauthorized access: User is not an admin", res.body.Message)

	res = h.adminLogs(h.req(map[string]string{"userId": admin.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "Admin logs retrieved successfully", res.body.Message)

	res = h.userLogStats(h.req(map[string]string{"userId": "bogus"}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)

	res = h.allLogStats(h.req(map[string]string{"userId": admin.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
}

func TestActivityRoutesMountUnderActivityLogs(t *testing.T) {
	h := newTestHandler(t, nil)
	routes, ok := h.groups()["/api/activity-logs"]
	require.True(t, ok)

	var paths []string
	for _, rt := range routes {
		paths = append(paths, rt.method+" /api/activity-logs"+rt.path)
	}
	require.Contains(t, paths, "POST /api/activity-logs/create")
	require.Contains(t, paths, "GET /api/activity-logs/user/:userId")
	require.Contains(t, paths, "GET /api/activity-logs/:userId/:id")
}

func TestActivityDetailAuditsMalformedIDVerbatim(t *testing.T) {
	h := newTestHandler(t, nil)
	member := h.mustCreateUser(t, "mia", "")

	res := h.activityDetail(h.req(map[string]string{"userId": member.String(), "id": "not-a-uuid"}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)

	res = h.logsByAction(h.req(map[string]string{"userId": member.String(), "action": "GET"}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	var details []string
	for _, entry := range res.body.Data.([]types.ActivityEntry) {
		details = append(details, entry.Details)
	}
	require.Contains(t, details, "Attempted to access non-existent or unauthorized activity log with ID: not-a-uuid")
}

func TestUserEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)
	admin := h.mustCreateUser(t, "root", "ADMIN")
	member := h.mustCreateUser(t, "mia", "")

	res := h.createUser(h.req(nil, nil, map[string]any{"username": "mia", "email": "other@example.com", "password": "pw", "name": "Dup"}))
	require.Equal(t, http.StatusConflict, res.status)

	res = h.userByUsername(h.req(map[string]string{"username": "mia"}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "User retrieved successfully", res.body.Message)
	require.Equal(t, member, res.body.Data.(types.UserView).ID)

	res = h.userByID(h.req(map[string]string{"id": "nope"}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)

	res = h.usersByRole(h.req(map[string]string{"role": "admin"}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.body.Data, 1)

	res = h.usersByRole(h.req(map[string]string{"role": "wizard"}, nil, nil))
	require.Equal(t, http.StatusBadRequest, res.status)

	res = h.userPage(h.req(nil, map[string]string{"size": "1", "page": "1"}, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, 2, *res.body.TotalRecords)
	require.Equal(t, 1, *res.body.CurrentPage)

	res = h.updateUser(h.req(map[string]string{"id": member.String(), "performedId": admin.String()}, nil, map[string]any{"name": "Mia R"}))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "Mia R", res.body.Data.(types.UserView).Name)

	res = h.userStats(h.req(map[string]string{"userId": member.String()}, nil, nil))
	require.Equal(t, http.StatusForbidden, res.status)

	res = h.userStats(h.req(map[string]string{"userId": admin.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "User statistics fetched successfully", res.body.Message)

	res = h.deleteUser(h.req(map[string]string{"id": member.String(), "performedId": admin.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)

	res = h.userByID(h.req(map[string]string{"id": member.String()}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)
}

func TestContactEndpoints(t *testing.T) {
	h := newTestHandler(t, nil)
	admin := h.mustCreateUser(t, "root", "ADMIN")
	member := h.mustCreateUser(t, "mia", "")

	res := h.createContact(h.req(nil, map[string]string{"userId": member.String()}, map[string]any{"name": "Ann", "phone": "555-0100", "email": "ann@example.com"}))
	require.Equal(t, http.StatusCreated, res.status)
	require.Equal(t, "Contact created successfully", res.body.Message)
	saved := res.body.Data.(types.Contact)

	res = h.createContact(h.req(nil, nil, map[string]any{"name": "Ghost"}))
	require.Equal(t, http.StatusNotFound, res.status)

	res = h.contactsByPhone(h.req(map[string]string{"phone": "555-0100"}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.body.Data, 1)

	res = h.contactsByEmail(h.req(map[string]string{"email": "nobody@example.com"}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)
	require.Equal(t, "No contacts found", res.body.Message)

	res = h.updateContact(h.req(map[string]string{"userId": member.String(), "id": saved.ID.String()}, nil, map[string]any{"address": "1 Main St"}))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, "1 Main St", res.body.Data.(types.Contact).Address)

	res = h.userContact(h.req(map[string]string{"userId": admin.String(), "contactId": saved.ID.String()}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)

	res = h.userContacts(h.req(map[string]string{"userId": member.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.body.Data, 1)

	day := saved.CreatedAt.UTC().Format("2006-01-02")
	res = h.userContactRange(h.req(map[string]string{"userId": member.String()}, map[string]string{"startDate": day, "endDate": day}, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Len(t, res.body.Data, 1)
	require.Nil(t, res.body.TotalRecords)

	res = h.userContactRangePage(h.req(map[string]string{"userId": member.String()}, map[string]string{"startDate": day, "endDate": day}, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, 1, *res.body.TotalRecords)

	res = h.userContactRange(h.req(map[string]string{"userId": member.String()}, map[string]string{"startDate": "01/02/2024", "endDate": day}, nil))
	require.Equal(t, http.StatusBadRequest, res.status)

	res = h.adminContactPage(h.req(map[string]string{"userId": member.String()}, nil, nil))
	require.Equal(t, http.StatusForbidden, res.status)

	res = h.adminContactPage(h.req(map[string]string{"userId": admin.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, 1, *res.body.TotalRecords)

	res = h.deleteContact(h.req(map[string]string{"userId": member.String(), "id": saved.ID.String()}, nil, nil))
	require.Equal(t, http.StatusOK, res.status)

	res = h.contactByID(h.req(map[string]string{"id": saved.ID.String()}, nil, nil))
	require.Equal(t, http.StatusNotFound, res.status)
}

func TestServeRecordsMetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := telemetry.New(reg)
	h := newTestHandler(t, metrics)

	rt := route{method: http.MethodGet, path: HealthPath, handle: h.checkHealth}
	res := h.serve(rt, HealthPath, h.req(nil, nil, nil))
	require.Equal(t, http.StatusOK, res.status)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, HealthPath, "200")))

	h.health = func(context.Context) error { return errors.New("db down") }
	res = h.checkHealth(h.req(nil, nil, nil))
	require.Equal(t, http.StatusServiceUnavailable, res.status)

	rt = route{method: http.MethodPost, path: "/create", handle: h.createUser}
	res = h.serve(rt, UserPrefix+"/create", request{ctx: context.Background(), body: []byte("{")})
	require.Equal(t, http.StatusBadRequest, res.status)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodPost, UserPrefix+"/create", "400")))
}

func TestEnvelopeOmitsPagingFieldsOnPlainResponses(t *testing.T) {
	data, err := json.Marshal(ok("done", nil).body)
	require.NoError(t, err)
	require.JSONEq(t, `{"statusCode":200,"status":"success","message":"done","data":null}`, string(data))

	page := types.NewPage([]int{1}, 3, types.PageSpec{Index: 1, Size: 1})
	data, err = json.Marshal(paged("paged", page).body)
	require.NoError(t, err)
	require.Contains(t, string(data), `"totalRecords":3`)
	require.Contains(t, string(data), `"currentPage":1`)
}

func TestParamNames(t *testing.T) {
	require.Equal(t, []string{"userId", "id"}, paramNames("/update/:userId/:id"))
	require.Empty(t, paramNames("/get-users"))
}

type testHandler struct {
	*Handler
}

func (h testHandler) req(params, query map[string]string, body map[string]any) request {
	r := request{
		ctx:    context.Background(),
		params: params,
		query:  func(name string) string { return query[name] },
	}
	if body != nil {
		data, _ := json.Marshal(body)
		r.body = data
	}
	return r
}

func (h testHandler) mustCreateUser(t *testing.T, username, role string) uuid.UUID {
	t.Helper()
	res := h.createUser(h.req(nil, nil, map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret-pw",
		"name":     strings.ToUpper(username[:1]) + username[1:],
		"role":     role,
	}))
	require.Equal(t, http.StatusCreated, res.status, res.body.Message)
	return res.body.Data.(types.UserView).ID
}

func newTestHandler(t *testing.T, metrics *telemetry.Metrics) testHandler {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	for _, path := range []string{
		"../../data/sql/migrations/sqlite/00001_users.up.sql",
		"../../data/sql/migrations/sqlite/00002_contacts.up.sql",
		"../../data/sql/migrations/sqlite/00003_activity_logs.up.sql",
	} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}

	users, err := directory.NewRepository(directory.RepositoryConfig{DB: db})
	require.NoError(t, err)
	contacts, err := contact.NewRepository(contact.RepositoryConfig{DB: db})
	require.NoError(t, err)
	logs, err := activity.NewRepository(activity.RepositoryConfig{DB: db})
	require.NoError(t, err)

	svc := service.New(service.Config{
		UserRepository:     users,
		ContactRepository:  contacts,
		ActivityRepository: logs,
		Hooks:              metrics.Hooks(types.Hooks{}),
	})
	return testHandler{New(Config{Service: svc, Metrics: metrics})}
}
