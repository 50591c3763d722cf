package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	definitions "github.com/goliatone/go-definitions"
	"github.com/goliatone/go-definitions/generator"
	"github.com/goliatone/go-definitions/internal/config"
	"github.com/goliatone/go-definitions/internal/writer"
	"github.com/goliatone/go-definitions/refresh"
)

const starterDefinitions = `enums:
  - name: Status
    options:
      ACTIVE: {label: Active}
      INACTIVE: {label: Inactive}
models:
  - name: Book
    fields:
      title: {type: String, max: 200}
      year: {type: Integer, optional: true}
      status: {type: Status}
      secretNote: {type: String, dbOnly: true}
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "definitionsgen: %s\n", formatError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("definitionsgen", flag.ContinueOnError)
	fs.SetOutput(out)

	var opts generator.Options
	var files, include, exclude stringList
	var watch, force bool
	var initPath string
	debounce := 200 * time.Millisecond

	fs.Var(&files, "definitions", "definitions file, YAML or JSON (repeatable)")
	fs.StringVar(&opts.SettingsFile, "config", opts.SettingsFile, "settings file with packages.<scope> entries")
	fs.StringVar(&opts.Scope, "scope", config.DefaultScope, "settings scope to read")
	fs.StringVar(&opts.OutDir, "out", opts.OutDir, "output directory (defaults to the settings value)")
	fs.StringVar(&opts.Pluralizer, "pluralizer", opts.Pluralizer, "plural name strategy: suffix or inflect")
	fs.BoolVar(&opts.DryRun, "dry-run", opts.DryRun, "dry run; do not write files")
	fs.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "log generated schema text")
	fs.BoolVar(&watch, "watch", false, "regenerate when definitions or settings change")
	fs.DurationVar(&debounce, "debounce", debounce, "delay used to group file changes in watch mode")
	fs.StringVar(&initPath, "init", "", "write a starter definitions file to this path and exit")
	fs.BoolVar(&force, "force", false, "overwrite an existing file with -init")
	fs.Var(&include, "include", "model include glob (repeatable)")
	fs.Var(&exclude, "exclude", "model exclude glob (repeatable)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if initPath != "" {
		status, err := writer.New(writer.WithForce(force), writer.WithDryRun(opts.DryRun)).
			WriteCustomOnce(initPath, []byte(starterDefinitions))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-14s %s\n", status, initPath)
		return nil
	}

	opts.DefinitionFiles = files
	opts.Include = include
	opts.Exclude = exclude
	opts.Logger = definitions.NewLogger(out)

	result, err := generator.Generate(ctx, opts)
	if err != nil {
		return err
	}
	printResult(out, result)

	if !watch {
		return nil
	}

	paths, err := watchPaths(opts)
	if err != nil {
		return err
	}
	_, err = refresh.Watch(ctx, paths, refresh.Options{
		GeneratorOptions: opts,
		Debounce:         debounce,
		OnResult:         func(res generator.Result) { printResult(out, res) },
		OnError:          func(err error) { fmt.Fprintf(out, "error: %s\n", formatError(err)) },
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %s\n", strings.Join(paths, ", "))

	<-ctx.Done()
	return nil
}

func watchPaths(opts generator.Options) ([]string, error) {
	paths := append([]string{}, opts.DefinitionFiles...)
	if len(paths) == 0 {
		settings, err := config.Load(opts.SettingsFile, opts.Scope)
		if err != nil {
			return nil, err
		}
		paths = append(paths, settings.Definitions...)
	}
	if opts.SettingsFile != "" {
		paths = append(paths, opts.SettingsFile)
	}
	return paths, nil
}

func printResult(out io.Writer, result generator.Result) {
	for _, file := range result.Files {
		fmt.Fprintf(out, "%-14s %s\n", file.Status, file.Path)
	}
}

// formatError appends the go-errors text code when one applies.
func formatError(err error) string {
	mapped := definitions.MapError(err)
	if mapped == nil || mapped.TextCode == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s [%s]", err.Error(), mapped.TextCode)
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	parts := strings.Split(value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}
