package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/amonks/findpage/internal/mutex"
	"github.com/gobwas/glob"
	"github.com/rjeczalik/notify"
)

type EventInfo struct {
	Path  string
	Event string
}

// Watch reports changes to the files matching pattern, which is either a
// path or a glob like "site/**/*.html". Events are collected until quiet
// has passed without another one, then delivered together.
var Watch = func(pattern string, quiet time.Duration) (<-chan []EventInfo, func(), error) {
	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, nil, err
	}
	watchPath, match := split(abs)

	c := make(chan notify.EventInfo, 16)
	if err := notify.Watch(watchPath, c, notify.Write, notify.Create, notify.Rename, notify.Remove); err != nil {
		return nil, nil, fmt.Errorf("watching %s: %w", pattern, err)
	}

	out := make(chan EventInfo)
	go func() {
		for ev := range c {
			if !match.Match(ev.Path()) {
				continue
			}
			out <- EventInfo{
				Path:  ev.Path(),
				Event: strings.TrimPrefix(ev.Event().String(), "notify."),
			}
		}
		close(out)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			notify.Stop(c)
			close(c)
		})
	}

	return debounce(quiet, out), stop, nil
}

type debounced[T any] struct {
	mu      *mutex.Mutex
	coll    []T
	waiting bool
}

func debounce(dur time.Duration, c <-chan EventInfo) <-chan []EventInfo {
	debounced := &debounced[EventInfo]{mu: mutex.New("debounce")}

	debouncedC := make(chan []EventInfo)

	go func() {
		for ev := range c {
			debounced.mu.Lock("ev")
			debounced.coll = append(debounced.coll, ev)
			if debounced.waiting {
				debounced.mu.Unlock()
				continue
			}
			debounced.waiting = true
			debounced.mu.Unlock()

			// One flusher at a time. Events that arrive while a batch
			// is waiting to be received go into the next batch.
			go func() {
				for {
					time.Sleep(dur)

					debounced.mu.Lock("flush")
					batch := debounced.coll
					debounced.coll = nil
					debounced.mu.Unlock()

					debouncedC <- batch

					debounced.mu.Lock("sent")
					if len(debounced.coll) == 0 {
						debounced.waiting = false
						debounced.mu.Unlock()
						return
					}
					debounced.mu.Unlock()
				}
			}()
		}
	}()

	return debouncedC
}

// split breaks an absolute path, which may contain a glob, into a
// directory to watch and a glob that events must match.
//
// For "/src/site/**/*.html" we set up a recursive watch on /src/site and
// match events against the whole glob. For a plain path like
// "/src/page.html" we watch /src, since editors often save by replacing
// the file, and match only that path.
func split(input string) (string, glob.Glob) {
	input = filepath.Clean(input)
	segments := strings.Split(input, "/")
	for i, seg := range segments {
		if strings.ContainsAny(seg, "*?[{") {
			w := strings.Join(segments[:i], "/")
			return filepath.Join(w, "..."), glob.MustCompile(input, '/')
		}
	}
	return filepath.Dir(input), glob.MustCompile(glob.QuoteMeta(input))
}
