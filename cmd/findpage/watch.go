package main

import (
	"log"
	"os"
	"time"

	"github.com/amonks/findpage/internal/config"
	"github.com/amonks/findpage/internal/watcher"
	"github.com/amonks/findpage/pkg/finder"
	"github.com/amonks/findpage/pkg/htmltree"
	tea "github.com/charmbracelet/bubbletea"
)

const reloadQuiet = 100 * time.Millisecond

// watch re-reads filename whenever it changes and sends the new document
// to the program.
func watch(filename string, cfg config.Config, send func(tea.Msg)) (func(), error) {
	events, stop, err := watcher.Watch(filename, reloadQuiet)
	if err != nil {
		return nil, err
	}

	go func() {
		for evs := range events {
			log.Printf("watch: %d change(s) to %s", len(evs), filename)
			doc, err := loadDocument(filename, cfg)
			if err != nil {
				log.Printf("watch: reload failed: %s", err)
				continue
			}
			send(finder.ReloadMsg{Document: doc})
		}
	}()

	return stop, nil
}

func loadDocument(filename string, cfg config.Config) (*htmltree.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return htmltree.Parse(f, cfg.DocumentOptions()...)
}
