// Package graphql is a minimal GraphQL-over-HTTP client for executing
// generated documents against a live endpoint.
//
// Generated documents have no compile-time response type, so Execute
// returns the raw data/errors envelope instead of unmarshaling into a
// caller-supplied struct.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Client is the interface the sampler and tests call into to actually make
// requests.
type Client interface {
	// Execute must send the given GraphQL document to the client's
	// endpoint and return the response envelope.
	//
	// query is the literal document text, e.g. `query { myField }`.
	// variables contains the GraphQL variables to send along with it, or
	// nil if there are none.  A non-nil *Response may still carry GraphQL
	// errors; transport failures are returned as the error.
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*Response, error)
}

type client struct {
	endpoint   string
	method     string
	httpClient *http.Client
}

// NewClient returns a Client which makes requests to the given endpoint,
// suitable for most users.
//
// The client makes POST requests using standard GraphQL HTTP-over-JSON
// transport.  It will use the given http client, or http.DefaultClient if
// a nil client is passed.  The typical method of adding authentication
// headers is to wrap the client's Transport.
func NewClient(endpoint string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{endpoint, http.MethodPost, httpClient}
}

type payload struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Response is the GraphQL response envelope.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors"`
}

// HasErrors reports whether the server rejected or partially failed the
// operation.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

func (c *client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*Response, error) {
	body, err := json.Marshal(payload{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
