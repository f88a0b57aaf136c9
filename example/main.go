// The example command draws random documents for a small book-store
// schema and, when GRAPHQL_ENDPOINT is set, sends them to that endpoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/cemkavuklu/hypothesis-graphql/graphql"
	"github.com/cemkavuklu/hypothesis-graphql/strategies"
)

const schema = `
type Book {
  title: String!
  author: Author
}

type Author {
  name: String!
  books: [Book!]
}

type Query {
  getBooks(limit: Int): [Book]
  getAuthors: [Author]
}
`

type authedTransport struct {
	key     string
	wrapped http.RoundTripper
}

func (t *authedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "bearer "+t.key)
	return t.wrapped.RoundTrip(req)
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}()

	parsed, err := strategies.LoadSchema(schema)
	if err != nil {
		return
	}
	queries, err := strategies.Queries(parsed, strategies.WithMaxDepth(3))
	if err != nil {
		return
	}

	var client graphql.Client
	if endpoint := os.Getenv("GRAPHQL_ENDPOINT"); endpoint != "" {
		httpClient := http.DefaultClient
		if key := os.Getenv("GRAPHQL_TOKEN"); key != "" {
			httpClient = &http.Client{
				Transport: &authedTransport{
					key:     key,
					wrapped: http.DefaultTransport,
				},
			}
		}
		client = graphql.NewClient(endpoint, httpClient)
	}

	for i := 0; i < 10; i++ {
		document := queries.Example(i)
		fmt.Println(document)

		if client == nil {
			continue
		}
		var resp *graphql.Response
		resp, err = client.Execute(context.Background(), document, nil)
		if err != nil {
			return
		}
		if resp.HasErrors() {
			err = fmt.Errorf("endpoint rejected document: %v", resp.Errors)
			return
		}
	}
}
