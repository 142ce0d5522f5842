package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

var OriginalWatch = Watch

var (
	mocks   map[string]chan []EventInfo
	mocksmu sync.Mutex
)

// Mock replaces Watch with a fake whose events are sent with [Dispatch].
func Mock() {
	mocksmu.Lock()
	defer mocksmu.Unlock()

	mocks = map[string]chan []EventInfo{}
	Watch = func(pattern string, _ time.Duration) (<-chan []EventInfo, func(), error) {
		mocksmu.Lock()
		defer mocksmu.Unlock()

		abs, err := filepath.Abs(pattern)
		if err != nil {
			return nil, nil, err
		}
		mock, hasMock := mocks[abs]
		if !hasMock {
			mock = make(chan []EventInfo)
			mocks[abs] = mock
		}
		var once sync.Once
		stop := func() { once.Do(func() { close(mock) }) }
		return mock, stop, nil
	}
}

func Dispatch(path string) {
	mocksmu.Lock()
	abs, _ := filepath.Abs(path)
	mock, hasMock := mocks[abs]
	mocksmu.Unlock()

	if !hasMock {
		panic(fmt.Errorf("can't dispatch on unwatched path '%s'", path))
	}
	mock <- []EventInfo{{Path: abs, Event: "Write"}}
}

func Unmock() {
	mocksmu.Lock()
	defer mocksmu.Unlock()

	mocks = nil
	Watch = OriginalWatch
}
