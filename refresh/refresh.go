package refresh

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-definitions/generator"
)

// GeneratorFunc executes a generation cycle.
type GeneratorFunc func(context.Context, generator.Options) (generator.Result, error)

// Options configure file-driven refreshes.
type Options struct {
	Generator        GeneratorFunc
	GeneratorOptions generator.Options
	Debounce         time.Duration
	OnResult         func(generator.Result)
	OnError          func(error)
}

// Refresher regenerates output when triggered. At most one generation runs at a time;
// triggers received while running collapse into a single follow-up run.
type Refresher struct {
	ctx  context.Context
	opts Options

	mu      sync.Mutex
	timer   *time.Timer
	running bool
	pending bool
}

// New returns a Refresher bound to ctx. Generation stops once ctx is done.
func New(ctx context.Context, opts Options) *Refresher {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Generator == nil {
		opts.Generator = generator.Generate
	}
	return &Refresher{ctx: ctx, opts: opts}
}

// Watch triggers the refresher whenever one of paths is written, created or renamed.
// Parent directories are watched so editors that replace files are handled. The
// watcher is closed when ctx is done.
func Watch(ctx context.Context, paths []string, opts Options) (*Refresher, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch: no paths given")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	refresher := New(ctx, opts)
	go refresher.watch(watcher, targets)
	return refresher, nil
}

func (r *Refresher) watch(watcher *fsnotify.Watcher, targets map[string]struct{}) {
	defer watcher.Close()
	for {
		select {
		case <-r.ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; ok {
				r.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if r.opts.OnError != nil {
				r.opts.OnError(fmt.Errorf("watch: %w", err))
			}
		}
	}
}

// Trigger schedules a refresh immediately (honoring debounce settings).
func (r *Refresher) Trigger() {
	if r == nil {
		return
	}
	if r.ctx.Err() != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.opts.Debounce > 0 {
		if r.timer == nil {
			r.timer = time.AfterFunc(r.opts.Debounce, r.flush)
		} else {
			r.timer.Reset(r.opts.Debounce)
		}
		return
	}

	if r.running {
		r.pending = true
		return
	}

	r.running = true
	go r.run()
}

func (r *Refresher) flush() {
	if r.ctx.Err() != nil {
		return
	}

	r.mu.Lock()
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	r.run()
}

func (r *Refresher) run() {
	if r.ctx.Err() != nil {
		r.finish(false)
		return
	}

	result, err := r.opts.Generator(r.ctx, r.opts.GeneratorOptions)
	if err != nil {
		if r.opts.OnError != nil {
			r.opts.OnError(err)
		}
	} else if r.opts.OnResult != nil {
		r.opts.OnResult(result)
	}

	r.finish(true)
}

func (r *Refresher) finish(allowPending bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if allowPending && r.pending && r.ctx.Err() == nil {
		r.pending = false
		go r.run()
		return
	}

	r.running = false
}
