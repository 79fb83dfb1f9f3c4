package httpapi

import (
	"net/http"

	"github.com/goliatone/go-contacts/pkg/apperr"
	"github.com/goliatone/go-contacts/pkg/types"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the body of every API response. Paging fields are only set on
// paginated responses.
type Envelope struct {
	StatusCode   int    `json:"statusCode"`
	Status       string `json:"status"`
	Message      string `json:"message"`
	Data         any    `json:"data"`
	TotalPages   *int   `json:"totalPages,omitempty"`
	CurrentPage  *int   `json:"currentPage,omitempty"`
	TotalRecords *int   `json:"totalRecords,omitempty"`
}

type response struct {
	status int
	body   Envelope
	err    error
}

func success(status int, message string, data any) response {
	return response{
		status: status,
		body: Envelope{
			StatusCode: status,
			Status:     statusSuccess,
			Message:    message,
			Data:       data,
		},
	}
}

func ok(message string, data any) response {
	return success(http.StatusOK, message, data)
}

func created(message string, data any) response {
	return success(http.StatusCreated, message, data)
}

func paged[T any](message string, page types.Page[T]) response {
	res := ok(message, page)
	totalPages, currentPage, totalRecords := page.TotalPages, page.CurrentPage, page.TotalRecords
	res.body.TotalPages = &totalPages
	res.body.CurrentPage = &currentPage
	res.body.TotalRecords = &totalRecords
	return res
}

func failure(status int, message string) response {
	return response{
		status: status,
		body: Envelope{
			StatusCode: status,
			Status:     statusError,
			Message:    message,
		},
	}
}

// fail maps err onto its HTTP status. Server side failures never expose the
// underlying message and use fallback instead.
func fail(err error, fallback string) response {
	status := apperr.HTTPStatus(err)
	if fallback == "" {
		fallback = http.StatusText(status)
	}
	res := failure(status, apperr.Message(err, fallback))
	res.err = err
	return res
}
