// Package server provides a small in-process GraphQL engine that the
// integration tests run generated documents against.
package server

import (
	"net/http/httptest"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

// Schema is the SDL the engine serves, for callers that want to generate
// documents against it.
const Schema = `
schema {
  query: Query
  mutation: Mutation
}

enum Color {
  RED
  GREEN
  BLUE
}

input UserInput {
  name: String!
  luckyNumber: Int
}

type User {
  id: ID!
  name: String!
  luckyNumber: Int
  color: Color
  friends: [User!]
}

type Query {
  me: User
  user(id: ID!): User
}

type Mutation {
  createUser(input: UserInput!): User
}
`

func int32ptr(v int32) *int32 { return &v }
func strptr(v string) *string { return &v }

type userRecord struct {
	id          graphql.ID
	name        string
	luckyNumber *int32
	color       *string
}

var users = []*userRecord{
	{id: "1", name: "Yours Truly", luckyNumber: int32ptr(17), color: strptr("RED")},
	{id: "2", name: "Raven", luckyNumber: int32ptr(-1), color: strptr("BLUE")},
}

type rootResolver struct{}

func (r *rootResolver) Me() *userResolver {
	return &userResolver{record: users[0]}
}

// User returns a nil resolver for unknown ids, which the engine renders
// as null.
func (r *rootResolver) User(args struct{ ID graphql.ID }) *userResolver {
	for _, record := range users {
		if record.id == args.ID {
			return &userResolver{record: record}
		}
	}
	return nil
}

type userInput struct {
	Name        string
	LuckyNumber *int32
}

func (r *rootResolver) CreateUser(args struct{ Input userInput }) *userResolver {
	return &userResolver{record: &userRecord{
		id:          "100",
		name:        args.Input.Name,
		luckyNumber: args.Input.LuckyNumber,
	}}
}

type userResolver struct {
	record *userRecord
}

func (r *userResolver) ID() graphql.ID      { return r.record.id }
func (r *userResolver) Name() string        { return r.record.name }
func (r *userResolver) LuckyNumber() *int32 { return r.record.luckyNumber }
func (r *userResolver) Color() *string      { return r.record.color }

func (r *userResolver) Friends() *[]*userResolver {
	friends := []*userResolver{}
	if r.record.id == "1" {
		friends = append(friends, &userResolver{record: users[1]})
	}
	return &friends
}

var schema = graphql.MustParseSchema(Schema, &rootResolver{})

// RunServer starts an HTTP server backed by the engine.  The caller must
// Close it.
func RunServer() *httptest.Server {
	return httptest.NewServer(&relay.Handler{Schema: schema})
}
