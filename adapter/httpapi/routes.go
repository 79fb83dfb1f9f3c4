package httpapi

import (
	"encoding/json"
	"net/http"

	router "github.com/goliatone/go-router"
)

// Register mounts every endpoint, plus the health probe, on r.
func Register[T any](r router.Router[T], h *Handler) {
	r.Get(HealthPath, h.adapt(route{method: http.MethodGet, path: HealthPath, handle: h.checkHealth}, HealthPath))
	for prefix, routes := range h.groups() {
		group := r.Group(prefix)
		for _, rt := range routes {
			handler := h.adapt(rt, prefix+rt.path)
			switch rt.method {
			case http.MethodGet:
				group.Get(rt.path, handler)
			case http.MethodPost:
				group.Post(rt.path, handler)
			case http.MethodPut:
				group.Put(rt.path, handler)
			case http.MethodDelete:
				group.Delete(rt.path, handler)
			}
		}
	}
}

func (h *Handler) adapt(rt route, fullPath string) router.HandlerFunc {
	names := paramNames(rt.path)
	return func(c router.Context) error {
		params := make(map[string]string, len(names))
		for _, name := range names {
			params[name] = c.Param(name, "")
		}
		req := request{
			ctx:    c.Context(),
			params: params,
			query:  func(name string) string { return c.Query(name, "") },
			limits: h.limits,
		}
		if rt.method == http.MethodPost || rt.method == http.MethodPut {
			req.body = c.Body()
		}
		return writeJSON(c, h.serve(rt, fullPath, req))
	}
}

func writeJSON(c router.Context, res response) error {
	data, err := json.Marshal(res.body)
	if err != nil {
		return c.Status(http.StatusInternalServerError).SendString("failed to marshal JSON")
	}
	c.SetHeader("Content-Type", "application/json")
	return c.Status(res.status).Send(data)
}

func decodeMap(body []byte, dst *map[string]any) error {
	return json.Unmarshal(body, dst)
}
