package main

import (
	"github.com/cemkavuklu/hypothesis-graphql/sampler"
)

func main() {
	sampler.Main()
}
