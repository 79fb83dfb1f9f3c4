package httpapi

import (
	"net/http"

	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
)

type userPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type userPatchPayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

func (p userPatchPayload) patch() types.UserPatch {
	patch := types.UserPatch{
		Username: p.Username,
		Email:    p.Email,
		Name:     p.Name,
	}
	if p.Role != nil {
		role := types.Role(*p.Role)
		patch.Role = &role
	}
	if p.Status != nil {
		status := types.UserStatus(*p.Status)
		patch.Status = &status
	}
	return patch
}

func (h *Handler) userRoutes() []route {
	return []route{
		{method: http.MethodPost, path: "/create", handle: h.createUser},
		{method: http.MethodGet, path: "/get-userById/:id", handle: h.userByID},
		{method: http.MethodGet, path: "/get-userByUsername/:username", handle: h.userByUsername},
		{method: http.MethodGet, path: "/get-userByEmail/:email", handle: h.userByEmail},
		{method: http.MethodGet, path: "/get-usersByRole/:role", handle: h.usersByRole},
		{method: http.MethodGet, path: "/get-users", handle: h.allUsers},
		{method: http.MethodGet, path: "/get-pageUsers", handle: h.userPage},
		{method: http.MethodGet, path: "/get-pageUsersByRole/:role", handle: h.userPage},
		{method: http.MethodPut, path: "/update-user/:id/:performedId", handle: h.updateUser},
		{method: http.MethodDelete, path: "/delete-user/:id/:performedId", handle: h.deleteUser},
		{method: http.MethodGet, path: "/get-stats/:userId", handle: h.userStats},
	}
}

func (h *Handler) createUser(req request) response {
	var payload userPayload
	if err := req.decode(&payload); err != nil {
		return fail(err, "")
	}
	var view types.UserView
	err := h.commands.UserCreate.Execute(req.ctx, command.UserCreateInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
		Role:     payload.Role,
		Result:   &view,
	})
	if err != nil {
		return fail(err, "An error occurred while creating the user")
	}
	return created("User created successfully", view)
}

func (h *Handler) userByID(req request) response {
	id, err := req.userID("id")
	if err != nil {
		return fail(err, "")
	}
	return h.lookupUser(req, query.UserLookupInput{ID: id})
}

func (h *Handler) userByUsername(req request) response {
	return h.lookupUser(req, query.UserLookupInput{Username: req.param("username")})
}

func (h *Handler) userByEmail(req request) response {
	return h.lookupUser(req, query.UserLookupInput{Email: req.param("email")})
}

func (h *Handler) lookupUser(req request, input query.UserLookupInput) response {
	view, err := h.queries.UserLookup.Query(req.ctx, input)
	if err != nil {
		return fail(err, "An error occurred while retrieving the user")
	}
	return ok("User retrieved successfully", view)
}

func (h *Handler) usersByRole(req request) response {
	users, err := h.queries.UserList.Query(req.ctx, query.UserListInput{Role: req.param("role")})
	if err != nil {
		return fail(err, "An error occurred while retrieving users")
	}
	if len(users) == 0 {
		return failure(http.StatusNotFound, "No users found with this role")
	}
	return ok("Users retrieved successfully", users)
}

func (h *Handler) allUsers(req request) response {
	users, err := h.queries.UserList.Query(req.ctx, query.UserListInput{})
	if err != nil {
		return fail(err, "An error occurred while retrieving users")
	}
	if len(users) == 0 {
		return failure(http.StatusNotFound, "No users found")
	}
	return ok("All users retrieved successfully", users)
}

func (h *Handler) userPage(req request) response {
	page, err := h.queries.UserPage.Query(req.ctx, query.UserPageInput{
		Role: req.param("role"),
		Page: req.page(),
	})
	if err != nil {
		return fail(err, "An error occurred while retrieving users")
	}
	return paged("Users fetched successfully", page)
}

func (h *Handler) updateUser(req request) response {
	id, err := req.userID("id")
	if err != nil {
		return fail(err, "")
	}
	performer, err := req.userID("performedId")
	if err != nil {
		return fail(err, "")
	}
	var payload userPatchPayload
	if err := req.decode(&payload); err != nil {
		return fail(err, "")
	}
	var view types.UserView
	err = h.commands.UserUpdate.Execute(req.ctx, command.UserUpdateInput{
		UserID:      id,
		PerformedBy: performer,
		Patch:       payload.patch(),
		Result:      &view,
	})
	if err != nil {
		return fail(err, "An error occurred while updating the user")
	}
	return ok("User updated successfully", view)
}

func (h *Handler) deleteUser(req request) response {
	id, err := req.userID("id")
	if err != nil {
		return fail(err, "")
	}
	performer, err := req.userID("performedId")
	if err != nil {
		return fail(err, "")
	}
	var view types.UserView
	err = h.commands.UserDelete.Execute(req.ctx, command.UserDeleteInput{
		UserID:      id,
		PerformedBy: performer,
		Result:      &view,
	})
	if err != nil {
		return fail(err, "An error occurred while deleting the user")
	}
	return ok("User deleted successfully", view)
}

func (h *Handler) userStats(req request) response {
	stats, err := h.queries.UserStats.Query(req.ctx, query.UserStatsInput{
		RequestedBy: req.optionalID("userId"),
	})
	if err != nil {
		return fail(err, "An error occurred while fetching user statistics")
	}
	return ok("User statistics fetched successfully", stats)
}
