// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpace/main.go
// Summary: Demo surface for the adaptive redraw pacer.
// Usage: Run `texelpace` in a terminal. The screen redraws only when the
// pacer asks: watch the clock stutter down to the idle cadence, then touch
// the mouse or keyboard to snap it back. `r` simulates an external
// reload-reset, ESC or Ctrl-C quits. `-trace` records every redraw request
// to a SQLite file for offline analysis.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpace/config"
	"github.com/framegrace/texelpace/pace"
	"github.com/framegrace/texelpace/pacetcell"
	"github.com/framegrace/texelpace/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelpace", flag.ContinueOnError)
	tracePath := fs.String("trace", "", "Record redraw requests to a SQLite trace at this path")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	logFile, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Main: config load failed, using defaults: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	driver := pacetcell.NewTcellSurfaceDriver(screen)
	if err := driver.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer driver.Fini()

	fg, bg := terminalColors()
	driver.SetStyle(tcell.StyleDefault.Foreground(fg).Background(bg))
	driver.HideCursor()
	driver.EnableMouse()
	driver.EnableFocus()
	driver.Clear()

	var surface pace.Surface = pacetcell.NewRequester(driver)
	var traced *tracedSurface
	if *tracePath != "" {
		store, err := trace.NewStore(trace.DefaultConfig(*tracePath))
		if err != nil {
			return fmt.Errorf("open trace store: %w", err)
		}
		defer store.Close()
		traced = &tracedSurface{inner: surface, store: store}
		surface = traced
	}

	sched, err := pace.NewScheduler(pace.Config{BackoffTable: cfg.BackoffTable()}, surface)
	if err != nil {
		return err
	}
	defer sched.Close()
	if traced != nil {
		traced.attach(sched)
	}

	dispatcher := pace.NewEventDispatcher()
	binding := pace.BindSignals(dispatcher, sched, cfg.SignalMap())
	defer binding.Detach()

	pump := pacetcell.NewPump(driver, dispatcher)
	pump.Start()
	defer pump.Stop()

	view := newStatsView(driver, sched, len(cfg.BackoffMillis))
	sched.Start()
	view.draw()

	log.Printf("Main: demo started, table=%v trace=%q", cfg.BackoffTable(), *tracePath)

	for ev := range pump.Events() {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			driver.Sync()
			view.draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				log.Printf("Main: quit requested, %s", sched)
				return nil
			}
			if ev.Rune() == 'r' {
				// The out-of-band reset a live-reload layer would send.
				dispatcher.Broadcast(pace.Event{Type: pace.EventReloadReset, When: time.Now()})
			}
		default:
			if pacetcell.IsRedrawRequest(ev) {
				view.draw()
			}
		}
	}
	return nil
}

func setupLogging() (*os.File, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	logDir := filepath.Join(configDir, "texelpace", "logs")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, err
	}
	logPath := filepath.Join(logDir, "texelpace.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
