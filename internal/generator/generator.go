package generator

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ettle/strcase"

	definitions "github.com/goliatone/go-definitions"
	"github.com/goliatone/go-definitions/internal/config"
	"github.com/goliatone/go-definitions/internal/metadata"
	"github.com/goliatone/go-definitions/internal/writer"
)

// Options configure the generation flow. Empty values fall back to the settings file.
type Options struct {
	DefinitionFiles []string
	SettingsFile    string
	Scope           string
	OutDir          string
	Include         []string
	Exclude         []string
	Pluralizer      string
	DryRun          bool
	Verbose         bool
	Logger          definitions.Logger
}

// FileResult captures the status of a single write.
type FileResult struct {
	Path   string
	Status writer.Status
}

// Result summarizes generation.
type Result struct {
	Files  []FileResult
	Models []string
	Enums  []string
}

// Generate loads definitions, assembles the schema and writes every artifact.
func Generate(ctx context.Context, opts Options) (Result, error) {
	var result Result

	settings, err := config.Load(opts.SettingsFile, opts.Scope)
	if err != nil {
		return result, fmt.Errorf("load settings: %w", err)
	}
	if opts.Pluralizer != "" {
		settings.Pluralizer = opts.Pluralizer
		if err := settings.Validate(); err != nil {
			return result, err
		}
	}

	files := opts.DefinitionFiles
	if len(files) == 0 {
		files = settings.Definitions
	}
	if len(files) == 0 {
		return result, fmt.Errorf("no definitions files given")
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = settings.Out
	}
	outDir = filepath.Clean(outDir)

	doc, err := metadata.FromFiles(files...)
	if err != nil {
		return result, fmt.Errorf("load definitions: %w", err)
	}

	models := filterModels(doc.Models, opts.Include, opts.Exclude)
	if len(models) == 0 && len(doc.Enums) == 0 {
		return result, fmt.Errorf("no definitions matched include/exclude filters")
	}

	compileOpts := settings.Options()
	if opts.Verbose {
		compileOpts = append(compileOpts, definitions.WithVerbose(true))
	}
	if opts.Logger != nil {
		compileOpts = append(compileOpts, definitions.WithLogger(opts.Logger))
	}

	bundle, err := definitions.Assemble(ctx, models, doc.Enums, compileOpts...)
	if err != nil {
		return result, fmt.Errorf("assemble schema: %w", err)
	}

	w := writer.New(writer.WithDryRun(opts.DryRun))

	type writeStep struct {
		path   string
		render func() ([]byte, error)
	}

	steps := []writeStep{{
		path:   filepath.Join(outDir, "schema.graphql"),
		render: func() ([]byte, error) { return []byte(bundle.SDL()), nil },
	}}

	for _, m := range bundle.Models {
		dir := strcase.ToKebab(m.Name)
		for _, op := range m.Operations() {
			steps = append(steps, writeStep{
				path:   filepath.Join(outDir, "operations", dir, strcase.ToKebab(op.Name)+".graphql"),
				render: func() ([]byte, error) { return []byte(op.Document), nil },
			})
		}
		steps = append(steps, writeStep{
			path: filepath.Join(outDir, "validation", dir+".json"),
			render: func() ([]byte, error) {
				schema, err := m.ToSimpleSchema()
				if err != nil {
					return nil, err
				}
				var buf bytes.Buffer
				err = schema.WriteJSON(&buf, "  ")
				return buf.Bytes(), err
			},
		})
		result.Models = append(result.Models, m.Name)
	}

	for _, e := range bundle.Enums {
		steps = append(steps, writeStep{
			path: filepath.Join(outDir, "enums", strcase.ToKebab(e.Name)+".json"),
			render: func() ([]byte, error) {
				var buf bytes.Buffer
				err := e.WriteJSON(&buf, "  ")
				return buf.Bytes(), err
			},
		})
		result.Enums = append(result.Enums, e.Name)
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		content, err := step.render()
		if err != nil {
			return result, fmt.Errorf("render %s: %w", step.path, err)
		}
		status, err := w.WriteGenerated(step.path, content)
		if err != nil {
			return result, fmt.Errorf("write %s: %w", step.path, err)
		}
		result.Files = append(result.Files, FileResult{Path: step.path, Status: status})
	}

	return result, nil
}

func filterModels(models []definitions.ModelDefinition, include, exclude []string) []definitions.ModelDefinition {
	if len(include) == 0 && len(exclude) == 0 {
		return models
	}

	var filtered []definitions.ModelDefinition
	for _, model := range models {
		name := model.Name
		if matches(name, exclude) {
			continue
		}
		if len(include) > 0 && !matches(name, include) {
			continue
		}
		filtered = append(filtered, model)
	}
	return filtered
}

func matches(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	target := strings.ToLower(name)
	for _, pattern := range patterns {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if ok, err := path.Match(pattern, target); err == nil && ok {
			return true
		}
		if target == pattern {
			return true
		}
	}
	return false
}
