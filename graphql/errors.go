package graphql

import "fmt"

// HTTPError is returned by Execute when the endpoint responds with a
// non-200 status; GraphQL-level errors come back in the Response envelope
// instead.
type HTTPError struct {
	Body       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("returned error %v: %s", e.StatusCode, e.Body)
}
