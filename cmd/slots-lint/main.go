package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	slots "github.com/goliatone/go-slots"
	"github.com/goliatone/go-slots/pkg/node"
	"github.com/goliatone/go-slots/pkg/schema"
)

func main() {
	nodesPath := flag.String("nodes", "", "optional node document to classify against the schema")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <schema files...>\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint slot schema documents for declarations the library tolerates but never validates.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range paths {
		if lintFile(path) {
			failed = true
		}
	}

	if *nodesPath != "" {
		if len(paths) != 1 {
			fmt.Fprintln(os.Stderr, "-nodes requires exactly one schema file")
			os.Exit(2)
		}
		if classifyFile(paths[0], *nodesPath) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// lintFile reports schema issues to stderr; it returns true when any issue
// or read failure surfaced.
func lintFile(path string) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
		return true
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
		return true
	}

	issues, err := schema.Lint(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
		return true
	}
	for _, issue := range issues {
		if issue.Group != "" {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", path, issue.Group, issue.Message)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, issue.Message)
	}
	return len(issues) > 0
}

// classifyFile groups the node document against the schema and prints the
// per-bucket counts, or the first cardinality violation.
func classifyFile(schemaPath, nodesPath string) bool {
	sch, err := schema.Load(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "classify %s: %v\n", schemaPath, err)
		return true
	}
	raw, err := os.ReadFile(nodesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "classify %s: %v\n", nodesPath, err)
		return true
	}
	nodes, err := node.ParseList(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "classify %s: %v\n", nodesPath, err)
		return true
	}

	result, err := slots.Group(nodes, sch)
	if err != nil {
		var cardErr *slots.CardinalityError
		if errors.As(err, &cardErr) {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s (got %d)\n", nodesPath, cardErr.Group, cardErr.Error(), cardErr.Actual)
			return true
		}
		fmt.Fprintf(os.Stderr, "classify: %v\n", err)
		return true
	}

	for _, group := range sch {
		fmt.Printf("%s: %d\n", group.Name, len(result.Children(group.Name)))
	}
	fmt.Printf("%s: %d\n", slots.RestKey, len(result.Rest()))
	return false
}
