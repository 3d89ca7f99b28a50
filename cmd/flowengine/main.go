// Package main provides the flowengine CLI: it loads a flow definition from
// a JSON or YAML file (or picks one by id from a directory of them), runs it
// with pass-through handlers, and prints the execution trace and metrics.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreasCaldewei/simple-flow-engine/internal/adapters/repository/flowrepo"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/adapters/repository/sqlite"
	"github.com/AndreasCaldewei/simple-flow-engine/internal/core/flow"
	"github.com/AndreasCaldewei/simple-flow-engine/pkg/flowengine"
	"github.com/AndreasCaldewei/simple-flow-engine/pkg/validation"
)

// Version information set during build
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("flowengine", flag.ContinueOnError)
	var (
		file     = fs.String("file", "", "flow definition file (.json, .yaml, .yml) or a directory of them")
		flowID   = fs.String("flow", "", "id of the definition to run when -file is a directory")
		maxSteps = fs.Int("max-steps", 0, "maximum node executions per run (0 = default)")
		archive  = fs.String("archive", "", "SQLite database to archive the settled run into")
		inspect  = fs.Bool("inspect", false, "print the structural report and exit without running")
		verbose  = fs.Bool("v", false, "enable debug logging")
		version  = fs.Bool("version", false, "print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		fmt.Printf("flowengine %s (commit: %s)\n", Version, Commit)
		return nil
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	def, err := resolveDefinition(*file, *flowID)
	if err != nil {
		return err
	}

	if *inspect {
		return printJSON(validation.Inspect(def))
	}

	opts := []flowengine.Option{flowengine.WithLogger(logger)}
	if *maxSteps > 0 {
		opts = append(opts, flowengine.WithMaxSteps(*maxSteps))
	}
	if *archive != "" {
		store, err := sqlite.Open(context.Background(), *archive)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, flowengine.WithArchive(store))
	}

	m := flowengine.New(opts...)
	registerPassthroughHandlers(m, def, logger)

	if err := m.LoadFlow(def); err != nil {
		return err
	}

	ec, runErr := m.Run(context.Background())
	if runErr != nil {
		logger.Error("run failed", "error", runErr)
	}

	out := struct {
		Trace   *flowengine.ExecutionContext `json:"trace"`
		Result  map[string]any               `json:"result,omitempty"`
		Metrics flowengine.Metrics           `json:"metrics"`
	}{
		Trace:   ec,
		Result:  m.Result(),
		Metrics: m.ExecutionMetrics(),
	}
	if err := printJSON(out); err != nil {
		return err
	}
	return runErr
}

// resolveDefinition loads the definition to run. A plain file loads
// directly; a directory loads every definition file into a repository, from
// which -flow selects by id.
func resolveDefinition(path, flowID string) (*flowengine.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return loadDefinition(path)
	}

	ctx := context.Background()
	repo := flowrepo.NewInMemoryRepository()
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		def, err := loadDefinition(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		if err := repo.Save(ctx, def); err != nil {
			return nil, err
		}
	}

	if flowID == "" {
		defs, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(defs) == 1 {
			return defs[0], nil
		}
		ids := make([]string, 0, len(defs))
		for _, d := range defs {
			ids = append(ids, d.ID)
		}
		return nil, fmt.Errorf("-flow is required to pick one of %d definitions in %s: %s",
			len(defs), path, strings.Join(ids, ", "))
	}
	return repo.Get(ctx, flowID)
}

// loadDefinition reads a flow definition from a JSON or YAML file, picking
// the decoder by extension.
func loadDefinition(path string) (*flowengine.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def flowengine.Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if def.ID == "" {
		def.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &def, nil
}

// registerPassthroughHandlers binds an input-echoing handler to every
// non-start, non-end node type in the definition, so any flow can be
// dry-run from the command line.
func registerPassthroughHandlers(m *flowengine.Machine, def *flowengine.Definition, logger *slog.Logger) {
	seen := make(map[string]bool)
	for _, n := range def.Nodes {
		if n.Type == flow.NodeTypeStart || n.Type == flow.NodeTypeEnd || seen[n.Type] {
			continue
		}
		seen[n.Type] = true
		nodeType := n.Type
		m.RegisterHandler(nodeType, func(_ context.Context, input map[string]any) (map[string]any, error) {
			logger.Debug("executing passthrough handler", "type", nodeType)
			output := make(map[string]any, len(input))
			for k, v := range input {
				output[k] = v
			}
			return output, nil
		})
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
