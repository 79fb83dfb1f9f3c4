package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
)

// DateLayout is the calendar day format accepted by the date range queries.
const DateLayout = "2006-01-02"

// ContactQueryConfig wires dependencies for contact queries.
type ContactQueryConfig struct {
	Repository types.ContactRepository
	Users      types.UserDirectory
	Activity   types.ActivityRecorder
	Logger     types.Logger
}

type contactQueries struct {
	repo     types.ContactRepository
	users    types.UserDirectory
	activity types.ActivityRecorder
	logger   types.Logger
}

func newContactQueries(cfg ContactQueryConfig) contactQueries {
	return contactQueries{
		repo:     cfg.Repository,
		users:    cfg.Users,
		activity: cfg.Activity,
		logger:   safeLogger(cfg.Logger),
	}
}

func (q contactQueries) ready() error {
	if q.repo == nil {
		return types.ErrMissingContactRepository
	}
	return nil
}

// ContactLookupInput names a contact by id regardless of owner.
type ContactLookupInput struct {
	ID uuid.UUID
}

// Type implements gocommand.Message.
func (ContactLookupInput) Type() string { return "query.contact.lookup" }

// Validate implements gocommand.Message.
func (ContactLookupInput) Validate() error { return nil }

// ContactLookupQuery resolves a single contact without an owner check.
type ContactLookupQuery struct{ contactQueries }

// NewContactLookupQuery constructs the lookup query.
func NewContactLookupQuery(cfg ContactQueryConfig) *ContactLookupQuery {
	return &ContactLookupQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[ContactLookupInput, types.Contact] = (*ContactLookupQuery)(nil)

// Query fails with ContactNotFound when nothing matches.
func (q *ContactLookupQuery) Query(ctx context.Context, input ContactLookupInput) (types.Contact, error) {
	if err := q.ready(); err != nil {
		return types.Contact{}, err
	}
	if input.ID == uuid.Nil {
		return types.Contact{}, apperr.ContactNotFound(input.ID)
	}
	contact, err := q.repo.GetContact(ctx, input.ID)
	if err != nil {
		return types.Contact{}, apperr.Storage(err, "contact lookup")
	}
	if contact == nil {
		return types.Contact{}, apperr.ContactNotFound(input.ID)
	}
	return *contact, nil
}

// ContactSearchInput matches contacts across all users by exact phone or
// case-insensitive email. Phone wins when both are set.
type ContactSearchInput struct {
	Phone string
	Email string
}

// Type implements gocommand.Message.
func (ContactSearchInput) Type() string { return "query.contact.search" }

// Validate implements gocommand.Message.
func (input ContactSearchInput) Validate() error {
	if strings.TrimSpace(input.Phone) == "" && strings.TrimSpace(input.Email) == "" {
		return apperr.Validation("phone or email required", ErrLookupKeyRequired)
	}
	return nil
}

// ErrLookupKeyRequired is returned when a search names no key.
var ErrLookupKeyRequired = fmt.Errorf("%w: lookup key required", types.ErrValidation)

// ContactSearchQuery lists every contact sharing a phone or email.
type ContactSearchQuery struct{ contactQueries }

// NewContactSearchQuery constructs the search query.
func NewContactSearchQuery(cfg ContactQueryConfig) *ContactSearchQuery {
	return &ContactSearchQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[ContactSearchInput, []types.Contact] = (*ContactSearchQuery)(nil)

// Query returns an empty slice when nothing matches.
func (q *ContactSearchQuery) Query(ctx context.Context, input ContactSearchInput) ([]types.Contact, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	filter := types.ContactFilter{}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		filter.Phone = phone
	} else {
		filter.Email = strings.TrimSpace(input.Email)
	}
	contacts, err := q.repo.ListContacts(ctx, filter)
	if err != nil {
		return nil, apperr.Storage(err, "contact search")
	}
	return nonNil(contacts), nil
}

// UserContactsInput lists the contacts of UserID with optional exact filters.
type UserContactsInput struct {
	UserID uuid.UUID
	Email  string
	Phone  string
}

// Type implements gocommand.Message.
func (UserContactsInput) Type() string { return "query.contact.user_list" }

// Validate implements gocommand.Message.
func (UserContactsInput) Validate() error { return nil }

// UserContactsQuery lists a user's contacts.
type UserContactsQuery struct{ contactQueries }

// NewUserContactsQuery constructs the list query.
func NewUserContactsQuery(cfg ContactQueryConfig) *UserContactsQuery {
	return &UserContactsQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[UserContactsInput, []types.Contact] = (*UserContactsQuery)(nil)

// Query fails with UserNotFound for unknown owners.
func (q *UserContactsQuery) Query(ctx context.Context, input UserContactsInput) ([]types.Contact, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}
	if _, err := requireUser(ctx, q.users, input.UserID); err != nil {
		return nil, err
	}
	contacts, err := q.repo.ListContacts(ctx, types.ContactFilter{
		UserID: input.UserID,
		Email:  strings.TrimSpace(input.Email),
		Phone:  strings.TrimSpace(input.Phone),
	})
	if err != nil {
		return nil, apperr.Storage(err, "contact list")
	}
	auditRead(ctx, q.activity, q.logger, input.UserID, "Fetched contacts for userId: "+input.UserID.String())
	return nonNil(contacts), nil
}

// UserContactPageInput selects one page of a user's contacts.
type UserContactPageInput struct {
	UserID uuid.UUID
	Page   types.PageSpec
}

// Type implements gocommand.Message.
func (UserContactPageInput) Type() string { return "query.contact.user_page" }

// Validate implements gocommand.Message.
func (UserContactPageInput) Validate() error { return nil }

// UserContactPageQuery pages through a user's contacts.
type UserContactPageQuery struct{ contactQueries }

// NewUserContactPageQuery constructs the page query.
func NewUserContactPageQuery(cfg ContactQueryConfig) *UserContactPageQuery {
	return &UserContactPageQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[UserContactPageInput, types.Page[types.Contact]] = (*UserContactPageQuery)(nil)

// Query fails with UserNotFound for unknown owners.
func (q *UserContactPageQuery) Query(ctx context.Context, input UserContactPageInput) (types.Page[types.Contact], error) {
	if err := q.ready(); err != nil {
		return types.Page[types.Contact]{}, err
	}
	if _, err := requireUser(ctx, q.users, input.UserID); err != nil {
		return types.Page[types.Contact]{}, err
	}
	page, err := q.repo.PageContacts(ctx, types.ContactFilter{UserID: input.UserID}, input.Page)
	if err != nil {
		return types.Page[types.Contact]{}, apperr.Storage(err, "contact page")
	}
	auditRead(ctx, q.activity, q.logger, input.UserID, "Fetched paginated contacts for userId: "+input.UserID.String())
	return page, nil
}

// UserContactInput names one contact as seen by its owner.
type UserContactInput struct {
	UserID    uuid.UUID
	ContactID uuid.UUID
}

// Type implements gocommand.Message.
func (UserContactInput) Type() string { return "query.contact.user_detail" }

// Validate implements gocommand.Message.
func (UserContactInput) Validate() error { return nil }

// UserContactQuery returns one of the user's contacts.
type UserContactQuery struct{ contactQueries }

// NewUserContactQuery constructs the detail query.
func NewUserContactQuery(cfg ContactQueryConfig) *UserContactQuery {
	return &UserContactQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[UserContactInput, types.Contact] = (*UserContactQuery)(nil)

// Query fails with ContactNotFound when the contact is missing or owned by
// another user. Both outcomes are recorded under the caller.
func (q *UserContactQuery) Query(ctx context.Context, input UserContactInput) (types.Contact, error) {
	if err := q.ready(); err != nil {
		return types.Contact{}, err
	}
	if _, err := requireUser(ctx, q.users, input.UserID); err != nil {
		return types.Contact{}, err
	}
	contact, err := q.repo.GetContact(ctx, input.ContactID)
	if err != nil {
		return types.Contact{}, apperr.Storage(err, "contact lookup")
	}
	if contact == nil || contact.UserID != input.UserID {
		auditRead(ctx, q.activity, q.logger, input.UserID, "Contact not found with ID: "+input.ContactID.String())
		return types.Contact{}, apperr.ContactNotFound(input.ContactID)
	}
	auditRead(ctx, q.activity, q.logger, input.UserID, "Fetched contact with ID: "+input.ContactID.String())
	return *contact, nil
}

// DateRange holds the raw YYYY-MM-DD bounds of a created_at filter.
type DateRange struct {
	Start string
	End   string
}

// Bounds parses the range. Start begins at 00:00:00 and End extends to
// 23:59:59 of the named day, both in UTC.
func (r DateRange) Bounds() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(r.Start))
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("Invalid startDate, expected YYYY-MM-DD", err)
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(r.End))
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("Invalid endDate, expected YYYY-MM-DD", err)
	}
	end = end.Add(24*time.Hour - time.Second)
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.Validation("endDate must not precede startDate", types.ErrValidation)
	}
	return start, end, nil
}

// UserContactRangeInput lists a user's contacts created within Range. A nil
// Page returns every match.
type UserContactRangeInput struct {
	UserID uuid.UUID
	Range  DateRange
	Page   *types.PageSpec
}

// Type implements gocommand.Message.
func (UserContactRangeInput) Type() string { return "query.contact.user_range" }

// Validate implements gocommand.Message.
func (input UserContactRangeInput) Validate() error {
	_, _, err := input.Range.Bounds()
	return err
}

// UserContactRangeQuery filters a user's contacts by creation day.
type UserContactRangeQuery struct{ contactQueries }

// NewUserContactRangeQuery constructs the range query.
func NewUserContactRangeQuery(cfg ContactQueryConfig) *UserContactRangeQuery {
	return &UserContactRangeQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[UserContactRangeInput, types.Page[types.Contact]] = (*UserContactRangeQuery)(nil)

// Query always returns a page. Without a PageSpec it holds every match on a
// single page.
func (q *UserContactRangeQuery) Query(ctx context.Context, input UserContactRangeInput) (types.Page[types.Contact], error) {
	if err := q.ready(); err != nil {
		return types.Page[types.Contact]{}, err
	}
	start, end, err := input.Range.Bounds()
	if err != nil {
		return types.Page[types.Contact]{}, err
	}
	if _, err := requireUser(ctx, q.users, input.UserID); err != nil {
		return types.Page[types.Contact]{}, err
	}
	filter := types.ContactFilter{
		UserID:      input.UserID,
		CreatedFrom: &start,
		CreatedTo:   &end,
	}

	var page types.Page[types.Contact]
	if input.Page != nil {
		page, err = q.repo.PageContacts(ctx, filter, *input.Page)
		if err != nil {
			return types.Page[types.Contact]{}, apperr.Storage(err, "contact page")
		}
	} else {
		contacts, err := q.repo.ListContacts(ctx, filter)
		if err != nil {
			return types.Page[types.Contact]{}, apperr.Storage(err, "contact list")
		}
		page = types.NewPage(contacts, len(contacts), types.PageSpec{Size: len(contacts)})
	}

	auditRead(ctx, q.activity, q.logger, input.UserID, fmt.Sprintf(
		"Fetched contacts for userId: %s created between %s and %s",
		input.UserID, start.Format(DateLayout), end.Format(DateLayout)))
	return page, nil
}

// AdminContactPageInput pages through every contact on behalf of RequestedBy.
type AdminContactPageInput struct {
	RequestedBy uuid.UUID
	Page        types.PageSpec
}

// Type implements gocommand.Message.
func (AdminContactPageInput) Type() string { return "query.contact.admin_page" }

// Validate implements gocommand.Message.
func (AdminContactPageInput) Validate() error { return nil }

// AdminContactPageQuery lists all contacts for administrators.
type AdminContactPageQuery struct{ contactQueries }

// NewAdminContactPageQuery constructs the admin query.
func NewAdminContactPageQuery(cfg ContactQueryConfig) *AdminContactPageQuery {
	return &AdminContactPageQuery{newContactQueries(cfg)}
}

var _ gocommand.Querier[AdminContactPageInput, types.Page[types.Contact]] = (*AdminContactPageQuery)(nil)

// Query fails with Unauthorized unless RequestedBy is an ADMIN.
func (q *AdminContactPageQuery) Query(ctx context.Context, input AdminContactPageInput) (types.Page[types.Contact], error) {
	if err := q.ready(); err != nil {
		return types.Page[types.Contact]{}, err
	}
	if _, err := requireAdmin(ctx, q.users, input.RequestedBy); err != nil {
		return types.Page[types.Contact]{}, err
	}
	page, err := q.repo.PageContacts(ctx, types.ContactFilter{}, input.Page)
	if err != nil {
		return types.Page[types.Contact]{}, apperr.Storage(err, "contact page")
	}
	auditRead(ctx, q.activity, q.logger, input.RequestedBy,
		"Fetched all paginated contacts for admin user ID: "+input.RequestedBy.String())
	return page, nil
}
