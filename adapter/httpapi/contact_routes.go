package httpapi

import (
	"net/http"

	"github.com/goliatone/go-contacts/command"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/goliatone/go-contacts/query"
)

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type contactPatchPayload struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (h *Handler) contactRoutes() []route {
	return []route{
		{method: http.MethodPost, path: "/create", handle: h.createContact},
		{method: http.MethodPut, path: "/update/:userId/:id", handle: h.updateContact},
		{method: http.MethodGet, path: "/phone/:phone", handle: h.contactsByPhone},
		{method: http.MethodGet, path: "/email/:email", handle: h.contactsByEmail},
		{method: http.MethodGet, path: "/user/:userId/paginated", handle: h.userContactPage},
		{method: http.MethodGet, path: "/user/:userId/contact/:contactId", handle: h.userContact},
		{method: http.MethodGet, path: "/user/:userId/date-range/paginated", handle: h.userContactRangePage},
		{method: http.MethodGet, path: "/user/:userId/date-range", handle: h.userContactRange},
		{method: http.MethodGet, path: "/user/:userId", handle: h.userContacts},
		{method: http.MethodGet, path: "/get-all-contacts/:userId/paginated", handle: h.adminContactPage},
		{method: http.MethodDelete, path: "/:userId/:id", handle: h.deleteContact},
		{method: http.MethodGet, path: "/:id", handle: h.contactByID},
	}
}

func (h *Handler) createContact(req request) response {
	userID, err := uuidOrNotFound(req.queryValue("userId"))
	if err != nil {
		return fail(err, "")
	}
	var payload contactPayload
	if err := req.decode(&payload); err != nil {
		return fail(err, "")
	}
	var saved types.Contact
	err = h.commands.ContactCreate.Execute(req.ctx, command.ContactCreateInput{
		UserID:  userID,
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
		Result:  &saved,
	})
	if err != nil {
		return fail(err, "An error occurred while creating the contact")
	}
	return created("Contact created successfully", saved)
}

func (h *Handler) updateContact(req request) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	contactID, err := req.contactID("id")
	if err != nil {
		return fail(err, "")
	}
	var payload contactPatchPayload
	if err := req.decode(&payload); err != nil {
		return fail(err, "")
	}
	var saved types.Contact
	err = h.commands.ContactUpdate.Execute(req.ctx, command.ContactUpdateInput{
		UserID:    userID,
		ContactID: contactID,
		Patch:     types.ContactPatch(payload),
		Result:    &saved,
	})
	if err != nil {
		return fail(err, "An error occurred while updating the contact")
	}
	return ok("Contact updated successfully", saved)
}

func (h *Handler) deleteContact(req request) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	contactID, err := req.contactID("id")
	if err != nil {
		return fail(err, "")
	}
	err = h.commands.ContactDelete.Execute(req.ctx, command.ContactDeleteInput{
		UserID:    userID,
		ContactID: contactID,
	})
	if err != nil {
		return fail(err, "An error occurred while deleting the contact")
	}
	return ok("Contact deleted successfully", nil)
}

func (h *Handler) contactByID(req request) response {
	id, err := req.contactID("id")
	if err != nil {
		return fail(err, "")
	}
	found, err := h.queries.ContactLookup.Query(req.ctx, query.ContactLookupInput{ID: id})
	if err != nil {
		return fail(err, "An error occurred while fetching the contact")
	}
	return ok("Contact fetched successfully", found)
}

func (h *Handler) contactsByPhone(req request) response {
	return h.searchContacts(req, query.ContactSearchInput{Phone: req.param("phone")})
}

func (h *Handler) contactsByEmail(req request) response {
	return h.searchContacts(req, query.ContactSearchInput{Email: req.param("email")})
}

func (h *Handler) searchContacts(req request, input query.ContactSearchInput) response {
	found, err := h.queries.ContactSearch.Query(req.ctx, input)
	if err != nil {
		return fail(err, "An error occurred while fetching contacts")
	}
	if len(found) == 0 {
		return failure(http.StatusNotFound, "No contacts found")
	}
	return ok("Contacts fetched successfully", found)
}

func (h *Handler) userContacts(req request) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	found, err := h.queries.UserContacts.Query(req.ctx, query.UserContactsInput{
		UserID: userID,
		Email:  req.queryValue("email"),
		Phone:  req.queryValue("phone"),
	})
	if err != nil {
		return fail(err, "An error occurred while fetching contacts")
	}
	return ok("Contacts fetched successfully", found)
}

func (h *Handler) userContactPage(req request) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	page, err := h.queries.UserContactPage.Query(req.ctx, query.UserContactPageInput{
		UserID: userID,
		Page:   req.page(),
	})
	if err != nil {
		return fail(err, "An error occurred while fetching contacts")
	}
	return paged("Paginated contacts fetched successfully", page)
}

func (h *Handler) userContact(req request) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	contactID, err := req.contactID("contactId")
	if err != nil {
		return fail(err, "")
	}
	found, err := h.queries.UserContact.Query(req.ctx, query.UserContactInput{
		UserID:    userID,
		ContactID: contactID,
	})
	if err != nil {
		return fail(err, "An error occurred while fetching the contact")
	}
	return ok("Contact fetched successfully", found)
}

func (h *Handler) userContactRange(req request) response {
	return h.contactRange(req, nil)
}

func (h *Handler) userContactRangePage(req request) response {
	spec := req.page()
	return h.contactRange(req, &spec)
}

func (h *Handler) contactRange(req request, spec *types.PageSpec) response {
	userID, err := req.userID("userId")
	if err != nil {
		return fail(err, "")
	}
	page, err := h.queries.UserContactRange.Query(req.ctx, query.UserContactRangeInput{
		UserID: userID,
		Range: query.DateRange{
			Start: req.queryValue("startDate"),
			End:   req.queryValue("endDate"),
		},
		Page: spec,
	})
	if err != nil {
		return fail(err, "An error occurred while fetching contacts")
	}
	if spec == nil {
		return ok("Contacts fetched successfully", page.Items)
	}
	return paged("Paginated contacts fetched successfully", page)
}

func (h *Handler) adminContactPage(req request) response {
	page, err := h.queries.AdminContactPage.Query(req.ctx, query.AdminContactPageInput{
		RequestedBy: req.optionalID("userId"),
		Page:        req.page(),
	})
	if err != nil {
		return fail(err, "An error occurred while fetching contacts")
	}
	return paged("Paginated contacts fetched successfully", page)
}
