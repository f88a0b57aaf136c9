package sampler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vektah/gqlparser/v2/ast"
	"gopkg.in/yaml.v2"
	"pgregory.net/rapid"

	"github.com/cemkavuklu/hypothesis-graphql/strategies"
)

type StringList []string

func (list StringList) Has(item string) bool {
	for _, value := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Config represents the sampler's configuration, generally read from
// gqlsampler.yaml.
//
// Callers must call ValidateAndFillDefaults before using the config.
type Config struct {
	// Schema file globs, relative to the config file.
	Schema StringList `yaml:"schema"`
	// Operation types to generate: "query", "mutation", or both.
	// Defaults to both.
	Operations StringList `yaml:"operations"`
	// Restrict generated top-level query fields to this list.
	Fields []string `yaml:"fields"`
	// Bound on selection nesting; 0 uses the library default.
	MaxDepth int `yaml:"max_depth"`
	// Number of documents to emit.
	Count int `yaml:"count"`
	// GraphQL endpoint to send each document to; empty means print only.
	Endpoint string `yaml:"endpoint"`
}

// ValidateAndFillDefaults ensures that the configuration is valid, and
// fills in any options that were unspecified.
//
// The argument is the directory relative to which paths will be
// interpreted, typically the directory of the config file.
func (c *Config) ValidateAndFillDefaults(baseDir string) error {
	if len(c.Schema) == 0 {
		return fmt.Errorf("config must list at least one schema file")
	}
	for i := range c.Schema {
		c.Schema[i] = filepath.Join(baseDir, c.Schema[i])
	}

	if len(c.Operations) == 0 {
		c.Operations = StringList{"query", "mutation"}
	}
	for _, operation := range c.Operations {
		if operation != "query" && operation != "mutation" {
			return fmt.Errorf("unknown operation type %q (must be query or mutation)", operation)
		}
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %v", c.MaxDepth)
	}
	if c.Count == 0 {
		c.Count = 10
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be positive, got %v", c.Count)
	}

	return nil
}

// ReadAndValidateConfig reads the configuration from the given file,
// validates it, and returns it.
func ReadAndValidateConfig(filename string) (*Config, error) {
	text, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unreadable config file %v: %v", filename, err)
	}

	var config Config
	if err := yaml.UnmarshalStrict(text, &config); err != nil {
		return nil, fmt.Errorf("invalid config file %v: %v", filename, err)
	}

	if err := config.ValidateAndFillDefaults(filepath.Dir(filename)); err != nil {
		return nil, fmt.Errorf("invalid config file %v: %v", filename, err)
	}

	return &config, nil
}

func expandFilenames(globs StringList) ([]string, error) {
	uniqFilenames := make(map[string]bool, len(globs))
	for _, glob := range globs {
		matches, err := filepath.Glob(glob)
		if err != nil {
			return nil, fmt.Errorf("can't expand file-glob %v: %v", glob, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%v did not match any files", glob)
		}
		for _, match := range matches {
			uniqFilenames[match] = true
		}
	}
	filenames := make([]string, 0, len(uniqFilenames))
	for filename := range uniqFilenames {
		filenames = append(filenames, filename)
	}
	return filenames, nil
}

// loadSchema combines the configured schema files, one source per file so
// errors point at the right one.
func (c *Config) loadSchema() (*ast.Schema, error) {
	filenames, err := expandFilenames(c.Schema)
	if err != nil {
		return nil, err
	}
	return strategies.LoadSchemaFiles(filenames...)
}

// generator builds the document generator the config describes.
func (c *Config) generator(schema *ast.Schema) (*rapid.Generator[string], error) {
	var opts []strategies.Option
	if len(c.Fields) > 0 {
		opts = append(opts, strategies.WithFields(c.Fields...))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, strategies.WithMaxDepth(c.MaxDepth))
	}

	switch {
	case c.Operations.Has("query") && c.Operations.Has("mutation"):
		return strategies.FromSchema(schema, opts...)
	case c.Operations.Has("query"):
		return strategies.Queries(schema, opts...)
	default:
		return strategies.Mutations(schema, opts...)
	}
}
