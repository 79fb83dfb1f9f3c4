package httpapi

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// request is the transport independent view of an incoming call.
type request struct {
	ctx    context.Context
	params map[string]string
	query  func(string) string
	body   []byte
	limits pageLimits
}

type pageLimits struct {
	def int
	max int
}

func (r request) param(name string) string {
	return strings.TrimSpace(r.params[name])
}

func (r request) queryValue(name string) string {
	if r.query == nil {
		return ""
	}
	return strings.TrimSpace(r.query(name))
}

// userID parses a path parameter naming a user. Malformed ids resolve to no
// user at all.
func (r request) userID(name string) (uuid.UUID, error) {
	return uuidOrNotFound(r.param(name))
}

func uuidOrNotFound(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.UserNotFound(raw)
	}
	return id, nil
}

func (r request) contactID(name string) (uuid.UUID, error) {
	raw := r.param(name)
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.ContactNotFound(raw)
	}
	return id, nil
}

// optionalID parses ids whose absence is handled by the query itself.
func (r request) optionalID(name string) uuid.UUID {
	id, err := uuid.Parse(r.param(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// page reads page, size and sort=field,asc|desc. Malformed numbers fall back
// to the defaults.
func (r request) page() types.PageSpec {
	spec := types.PageSpec{
		Index: atoiDefault(r.queryValue("page"), 0),
		Size:  atoiDefault(r.queryValue("size"), r.limits.def),
		Sort:  types.ParseSort(r.queryValue("sort")),
	}
	return spec.Normalize(r.limits.def, r.limits.max)
}

func (r request) decode(dst any) error {
	if len(r.body) == 0 {
		return apperr.Validation("Request body required", types.ErrValidation)
	}
	if err := json.Unmarshal(r.body, dst); err != nil {
		return apperr.Validation("Malformed request body", err)
	}
	return nil
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
