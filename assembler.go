package definitions

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-definitions/internal/sdl"
)

// Bundle holds the compiled records of an assembled schema, in input order.
type Bundle struct {
	Models []*Model
	Enums  []*Enum

	cfg config
}

// Assemble compiles every enum and model concurrently and checks that no two declarations
// share a type name and no two models share a Query or Mutation field. Compilation stops at the first failing definition.
func Assemble(ctx context.Context, models []ModelDefinition, enums []*EnumDefinition, opts ...Option) (*Bundle, error) {
	cfg := newConfig(opts...)
	bundle := &Bundle{
		Models: make([]*Model, len(models)),
		Enums:  make([]*Enum, len(enums)),
		cfg:    cfg,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for i, def := range enums {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if def == nil {
				def = &EnumDefinition{}
			}
			bundle.Enums[i] = compileEnum(def, cfg)
			return nil
		})
	}
	for i, def := range models {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := compileModel(def, cfg)
			if err != nil {
				return err
			}
			bundle.Models[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := bundle.checkNames(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) checkNames() error {
	seen := map[string]struct{}{
		PaginationActionInputName: {},
		PaginationActionName:      {},
		PaginationName:            {},
		"Query":                   {},
		"Mutation":                {},
	}
	for _, name := range b.cfg.scalars {
		seen[name] = struct{}{}
	}

	// Query and Mutation fields live in their own namespaces.
	queries := map[string]struct{}{}
	mutations := map[string]struct{}{}

	claim := func(names map[string]struct{}, name, kind string) error {
		if _, ok := names[name]; ok {
			return &DuplicateDefinitionError{Name: name, Kind: kind}
		}
		names[name] = struct{}{}
		return nil
	}

	for _, e := range b.Enums {
		if err := claim(seen, e.Name, "enum"); err != nil {
			return err
		}
	}
	for _, m := range b.Models {
		for _, name := range []string{m.Name, m.inputName(), m.PaginatedQueryName} {
			if err := claim(seen, name, "model"); err != nil {
				return err
			}
		}
		for _, name := range []string{m.OneQueryCamelCaseName, m.ManyQueryCamelCaseName, m.PaginatedQueryCamelCaseName} {
			if err := claim(queries, name, "query"); err != nil {
				return err
			}
		}
		for _, name := range []string{m.SaveMutationCamelCaseName, m.EraseMutationCamelCaseName} {
			if err := claim(mutations, name, "mutation"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Model returns the compiled model with the given name.
func (b *Bundle) Model(name string) (*Model, bool) {
	for _, m := range b.Models {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Enum returns the compiled enum with the given name.
func (b *Bundle) Enum(name string) (*Enum, bool) {
	for _, e := range b.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// SDL renders the complete schema: scalars, the pagination declarations once, enums,
// each model's types, then a single Query and Mutation type holding every model's root
// fields. The result is logged when verbose output is enabled.
func (b *Bundle) SDL() string {
	defs := make([]sdl.Definition, 0, len(b.cfg.scalars)+3+len(b.Enums)+3*len(b.Models)+2)
	for _, name := range b.cfg.scalars {
		defs = append(defs, &sdl.Scalar{Name: name})
	}
	defs = append(defs, commonTypeDefinitions()...)
	for _, e := range b.Enums {
		defs = append(defs, e.definition())
	}

	var queries, mutations []*sdl.FieldDefinition
	for _, m := range b.Models {
		defs = append(defs, m.typeDefinitions()...)
		queries = append(queries, m.queryFields()...)
		mutations = append(mutations, m.mutationFields()...)
	}
	if len(queries) > 0 {
		defs = append(defs, &sdl.Object{Name: "Query", Fields: queries})
	}
	if len(mutations) > 0 {
		defs = append(defs, &sdl.Object{Name: "Mutation", Fields: mutations})
	}

	out := sdl.Render(defs...)
	b.cfg.verboseLog("schema", PackageName, out)
	return out
}
