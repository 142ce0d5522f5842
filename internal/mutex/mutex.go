package mutex

import (
	"log"
	"os"
	"sync"
)

func New(name string) *Mutex {
	mu := &Mutex{name: name}
	mu.Printf("--- begin ---")
	return mu
}

// Mutex wraps sync.Mutex, adding:
//   - `defer mu.Lock("why").Unlock()` in a single line
//   - lock tracing to the file named by $FINDPAGE_MUTEX_LOG, if set
type Mutex struct {
	name string
	mu   sync.Mutex
}

var logger *log.Logger

func init() {
	path := os.Getenv("FINDPAGE_MUTEX_LOG")
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	logger = log.New(f, "", log.Lmicroseconds)
}

func (mu *Mutex) Lock(name string) *Mutex {
	mu.Printf("%s seeks lock", name)
	mu.mu.Lock()
	mu.Printf("%s receives lock", name)

	return mu
}

func (mu *Mutex) Unlock() {
	mu.Printf("releases lock")
	mu.mu.Unlock()
}

func (mu *Mutex) Printf(s string, args ...any) {
	if logger == nil {
		return
	}
	logger.Printf("[%s] "+s, append([]any{mu.name}, args...)...)
}
