// Package httpapi exposes the service over JSON endpoints mounted on a
// go-router server.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-contacts/pkg/telemetry"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/service"
	"github.com/goliatone/go-masker"
)

// Route prefixes.
const (
	ActivityPrefix = "/api/activity-logs"
	UserPrefix     = "/api/users"
	ContactPrefix  = "/api/contacts"
	HealthPath     = "/healthz"
)

// Config wires the handler dependencies. Service is required.
type Config struct {
	Service *service.Service
	Logger  types.Logger
	Metrics *telemetry.Metrics
	Masker  *masker.Masker
	// Health reports backing store connectivity. Service.HealthCheck is
	// always consulted first.
	Health func(context.Context) error
	// DefaultPageSize and MaxPageSize bound paginated endpoints. Zero
	// values use the package defaults.
	DefaultPageSize int
	MaxPageSize     int
}

// Handler serves the contacts API.
type Handler struct {
	svc      *service.Service
	commands service.Commands
	queries  service.Queries
	logger   types.Logger
	metrics  *telemetry.Metrics
	masker   *masker.Masker
	health   func(context.Context) error
	limits   pageLimits
}

type route struct {
	method string
	path   string
	handle func(request) response
}

// New builds a Handler.
func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	mask := cfg.Masker
	if mask == nil {
		mask = DefaultMasker()
	}
	return &Handler{
		svc:      cfg.Service,
		commands: cfg.Service.Commands(),
		queries:  cfg.Service.Queries(),
		logger:   logger,
		metrics:  cfg.Metrics,
		masker:   mask,
		health:   cfg.Health,
		limits:   pageLimits{def: cfg.DefaultPageSize, max: cfg.MaxPageSize},
	}
}

// DefaultMasker returns the shared masker with credential fields registered.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		masker.Default.RegisterMaskField("password", "filled4")
		masker.Default.RegisterMaskField("Password", "filled4")
	})
	return masker.Default
}

var defaultMaskerOnce sync.Once

func (h *Handler) groups() map[string][]route {
	return map[string][]route{
		ActivityPrefix: h.activityRoutes(),
		UserPrefix:     h.userRoutes(),
		ContactPrefix:  h.contactRoutes(),
	}
}

func (h *Handler) checkHealth(req request) response {
	if err := h.svc.HealthCheck(req.ctx); err != nil {
		return failure(http.StatusServiceUnavailable, err.Error())
	}
	if h.health != nil {
		if err := h.health(req.ctx); err != nil {
			return failure(http.StatusServiceUnavailable, err.Error())
		}
	}
	return ok("ok", nil)
}

// serve runs an endpoint and records the outcome.
func (h *Handler) serve(rt route, fullPath string, req request) response {
	if len(req.body) > 0 {
		h.logPayload(rt, req.body)
	}
	res := rt.handle(req)
	if res.status >= http.StatusInternalServerError {
		h.logger.Error("request failed", res.err, "method", rt.method, "route", fullPath)
	}
	h.metrics.ObserveRequest(rt.method, fullPath, res.status)
	return res
}

func (h *Handler) logPayload(rt route, body []byte) {
	if h.masker == nil {
		return
	}
	payload := map[string]any{}
	if err := decodeMap(body, &payload); err != nil {
		return
	}
	masked, err := h.masker.Mask(payload)
	if err != nil {
		return
	}
	h.logger.Debug("request payload", "method", rt.method, "route", rt.path, "payload", masked)
}

func paramNames(path string) []string {
	var names []string
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ":") {
			names = append(names, strings.TrimPrefix(segment, ":"))
		}
	}
	return names
}
