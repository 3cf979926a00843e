package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs"
	"github.com/bevatsal1122/agentverse-sub000/ecs/system"
	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/prefabs"
	"github.com/bevatsal1122/agentverse-sub000/server"
	"github.com/bevatsal1122/agentverse-sub000/sim"
)

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional) or \"metro\"")
	addr := flag.String("addr", "", "listen address (overrides station.yaml)")
	tick := flag.Duration("tick", 0, "simulation tick (overrides station.yaml)")
	agents := flag.Int("agents", 4, "random agents to spawn at start")
	debug := flag.Bool("debug", false, "log every simulation event")
	watch := flag.Bool("watch", true, "hot reload prefabs and levels on change")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	spec, err := prefabs.LoadStationSpec()
	if err != nil {
		logger.Fatal(err)
	}
	if *levelName == "" {
		*levelName = spec.Level
	}
	if *levelName == "" {
		*levelName = levels.Metro
	}
	if *addr != "" {
		spec.Server.Addr = *addr
	}
	if *tick > 0 {
		spec.Server.Tick = *tick
	}

	m, err := levels.Load(*levelName)
	if err != nil {
		logger.Fatal(err)
	}
	roster, err := prefabs.LoadAgentsSpec()
	if err != nil {
		logger.Fatal(err)
	}

	s, err := sim.New(sim.Options{Logger: logger, Spec: spec, Agents: roster, Map: m})
	if err != nil {
		logger.Fatal(err)
	}
	for i := 0; i < *agents; i++ {
		if _, ok := s.SpawnRandomAgent(); !ok {
			break
		}
	}
	if *debug {
		s.Subscribe("", func(evt ecs.Event) {
			if evt.Kind == system.EventAgentMoved {
				return
			}
			logger.Printf("event %s %s %+v", evt.Kind, evt.Entity, evt.Data)
		})
	}

	commands := sim.NewCommandBuffer(256)
	hub := server.NewHub(logger)
	loop := server.NewLoop(s, commands, hub, server.LoopConfig{
		Tick:           spec.Server.Tick,
		BroadcastEvery: spec.Server.BroadcastEvery,
		Logger:         logger,
	})

	if *watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, levels.Dir)
		if err != nil {
			logger.Printf("hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			r := &reloader{logger: logger, level: *levelName}
			go r.forward(watcher, loop)
		}
	}

	srv := &http.Server{
		Addr:              spec.Server.Addr,
		Handler:           server.NewHTTPHandler(server.HandlerConfig{Logger: logger, Hub: hub, Commands: commands}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Printf("stationd: %s on %s, map %q, tick %s", spec.Name, spec.Server.Addr, m.Name, spec.Server.Tick)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_ = loop.Run(ctx)

	hub.Close()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		logger.Printf("stationd: shutdown: %v", err)
	}
}
