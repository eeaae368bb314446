package graph

import (
	"github.com/graphql-go/graphql/gqlerrors"
)

// RequestError is the error type every resolver returns on a known
// failure. The status follows HTTP conventions: 401 unauthenticated,
// 403 forbidden, 404 not found, 422 validation failure.
type RequestError struct {
	Status  int
	Message string
	Data    interface{}
}

func NewRequestError(status int, message string, data interface{}) *RequestError {
	return &RequestError{Status: status, Message: message, Data: data}
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) StatusCode() int { return e.Status }

func (e *RequestError) ErrorData() interface{} { return e.Data }

// Extensions surfaces the status and data in formatted GraphQL errors.
func (e *RequestError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Status}
	if e.Data != nil {
		ext["data"] = e.Data
	}
	return ext
}

var _ gqlerrors.ExtendedError = (*RequestError)(nil)
