// Package sampler implements the command-line front end: it loads a
// schema per the config file, draws sample documents, and optionally
// sends them to a live endpoint.
package sampler

import (
	"context"
	"fmt"
	"io"
	"os"

	arg "github.com/alexflint/go-arg"

	"github.com/cemkavuklu/hypothesis-graphql/graphql"
)

type cliArgs struct {
	Config   string `arg:"positional" default:"gqlsampler.yaml" help:"path to the config file"`
	Count    int    `arg:"-n,--count" help:"number of documents to emit (overrides the config)"`
	Seed     int    `arg:"--seed" help:"base seed for document generation"`
	Endpoint string `arg:"--endpoint" help:"endpoint to send documents to (overrides the config)"`
}

func (cliArgs) Description() string {
	return "generate random GraphQL documents from a schema, and optionally run them against an endpoint"
}

func Main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}()

	var args cliArgs
	arg.MustParse(&args)
	err = run(&args, os.Stdout)
}

func run(args *cliArgs, out io.Writer) error {
	config, err := ReadAndValidateConfig(args.Config)
	if err != nil {
		return err
	}
	if args.Count > 0 {
		config.Count = args.Count
	}
	if args.Endpoint != "" {
		config.Endpoint = args.Endpoint
	}

	schema, err := config.loadSchema()
	if err != nil {
		return err
	}
	gen, err := config.generator(schema)
	if err != nil {
		return err
	}

	var client graphql.Client
	if config.Endpoint != "" {
		client = graphql.NewClient(config.Endpoint, nil)
	}

	failed := 0
	for i := 0; i < config.Count; i++ {
		document := gen.Example(args.Seed + i)
		fmt.Fprintln(out, document)

		if client == nil {
			continue
		}
		resp, err := client.Execute(context.Background(), document, nil)
		if err != nil {
			return fmt.Errorf("could not execute document against %v: %v", config.Endpoint, err)
		}
		if resp.HasErrors() {
			failed++
			fmt.Fprintf(out, "# rejected by %v: %v\n", config.Endpoint, resp.Errors)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%v of %v documents were rejected by %v", failed, config.Count, config.Endpoint)
	}
	return nil
}
