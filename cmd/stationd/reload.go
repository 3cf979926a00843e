package main

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/prefabs"
	"github.com/bevatsal1122/agentverse-sub000/server"
	"github.com/bevatsal1122/agentverse-sub000/sim"
)

// reloader turns file change notifications into simulation updates that
// run on the loop goroutine.
type reloader struct {
	logger *log.Logger
	level  string
}

func (r *reloader) forward(w *prefabs.Watcher, loop *server.Loop) {
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if !loop.Do(func(s *sim.Simulation) { r.apply(s, path) }) {
				r.logger.Printf("reload: busy, skipped %s", path)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.logger.Printf("reload: watch error: %v", err)
		}
	}
}

func (r *reloader) apply(s *sim.Simulation, path string) {
	base := filepath.Base(path)
	switch {
	case prefabs.IsSpecFile(path) && base == prefabs.StationFile:
		spec, err := prefabs.LoadStationSpec()
		if err != nil {
			r.logger.Printf("reload: %v", err)
			return
		}
		s.ApplySpec(spec)
	case prefabs.IsSpecFile(path) && base == prefabs.AgentsFile:
		roster, err := prefabs.LoadAgentsSpec()
		if err != nil {
			r.logger.Printf("reload: %v", err)
			return
		}
		s.SetRoster(roster)
		r.logger.Printf("reload: crew roster updated")
	case prefabs.IsScriptFile(path):
		if err := s.ReloadArrivalScript(); err != nil {
			r.logger.Printf("reload: arrival script: %v", err)
			return
		}
		r.logger.Printf("reload: arrival script updated")
	case prefabs.IsLevelFile(path) && strings.TrimSuffix(base, ".json") == strings.TrimSuffix(r.level, ".json"):
		m, err := levels.Load(r.level)
		if err != nil {
			r.logger.Printf("reload: %v", err)
			return
		}
		if err := s.ReplaceMap(m); err != nil {
			r.logger.Printf("reload: %v", err)
		}
	}
}
