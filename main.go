// gqlsampler generates random, valid GraphQL documents from a schema.
//
// To run gqlsampler:
//
//	go run github.com/cemkavuklu/hypothesis-graphql
//
// For programmatic access, see the "strategies" package, below.
package main

import (
	"github.com/cemkavuklu/hypothesis-graphql/sampler"
)

func main() {
	sampler.Main()
}
