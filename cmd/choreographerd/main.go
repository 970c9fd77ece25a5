// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Command choreographerd is a small harness that wires a
// choreographer.Choreographer between a synthetic event feed and a
// console-logging inner listener, for manual driving and inspection. It
// is not part of the choreographer's own contract.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	"github.com/sirupsen/logrus"

	"github.com/JunkYard-XD/frameworks-native-13/choreographer"
	"github.com/JunkYard-XD/frameworks-native-13/config"
	"github.com/JunkYard-XD/frameworks-native-13/internal/consoleindicator"
	"github.com/JunkYard-XD/frameworks-native-13/repl"
	"github.com/JunkYard-XD/frameworks-native-13/util"
	"github.com/JunkYard-XD/frameworks-native-13/util/multiplexer"
	"github.com/JunkYard-XD/frameworks-native-13/util/wrappers"
)

// CLI is the full set of flags/config fields choreographerd accepts,
// loadable from a TOML file via --config in addition to the command line.
type CLI struct {
	Config kong.ConfigFlag `help:"Path to a TOML config file" type:"path"`

	LogLevel              string `help:"Log level (trace, debug, info, warn, error)" default:"info" toml:"log_level"`
	DefaultMouseDisplayID int32  `help:"Display id mice without an association resolve to" default:"-1" toml:"default_mouse_display_id"`
	ShowTouchesEnabled    bool   `help:"Draw touch contact spots" default:"true" toml:"show_touches_enabled"`
	StylusIconEnabled     bool   `help:"Draw the stylus hover icon" default:"true" toml:"stylus_icon_enabled"`

	Feed bool `help:"Run a short synthetic event feed and exit"`
	Repl bool `help:"Start an interactive repl for live inspect/set commands" default:"true"`
}

func main() {
	var cli CLI
	path, _ := config.DefaultPath()

	parser := kong.Must(&cli,
		kong.Name("choreographerd"),
		kong.Description("Demo driver for the pointer choreographer"),
		kong.UsageOnError(),
		kong.Configuration(kongtoml.Loader, path),
	)
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	level, err := logrus.ParseLevel(cli.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	policy := consoleindicator.NewPolicy(logrus.StandardLogger())
	listener := &consoleListener{log: logrus.WithField("component", "inner-listener")}

	c := choreographer.New(listener, policy, choreographer.WithLogger(logrus.StandardLogger()))
	c.SetDefaultMouseDisplayID(choreographer.DisplayID(cli.DefaultMouseDisplayID))
	c.SetShowTouchesEnabled(cli.ShowTouchesEnabled)
	c.SetStylusPointerIconEnabled(cli.StylusIconEnabled)
	c.SetDisplayViewports([]choreographer.Viewport{
		{DisplayID: 0, LogicalWidth: 1920, LogicalHeight: 1080},
	})

	if cli.Feed {
		runSyntheticFeed(c)
	}

	if cli.Repl {
		runRepl(c)
	}
}

// consoleListener forwards every rewritten event to the log, standing in
// for the downstream input dispatcher.
type consoleListener struct {
	log *logrus.Entry
}

func (l *consoleListener) Notify(args choreographer.NotifyArgs) {
	l.log.WithField("kind", args.Kind()).Debug("forwarded event")
}

// runSyntheticFeed drives the choreographer with events produced by two
// independent synthetic device goroutines (a mouse and a touchscreen).
// Both producers send into one ManyToOne plexer; this goroutine is the
// sole reader and the sole caller into c, which is what keeps the
// choreographer's single-threaded contract intact despite having more
// than one concurrent event source upstream of it.
func runSyntheticFeed(c *choreographer.Choreographer) {
	events := make(chan choreographer.NotifyArgs)
	plexer := multiplexer.NewManyToOne(events)

	c.Notify(choreographer.InputDevicesChangedArgs{
		Devices: []choreographer.Device{
			{DeviceID: 1, Sources: choreographer.SourceMouse | choreographer.SourceMouseRelative, AssociatedDisplayID: choreographer.DisplayNone},
			{DeviceID: 2, Sources: choreographer.SourceTouchscreen, AssociatedDisplayID: 0},
		},
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 3; i++ {
			_ = plexer.Send(choreographer.MotionArgs{
				Source:   choreographer.SourceMouse,
				DeviceID: 1,
				Action:   choreographer.ActionMove,
				Pointers: []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolMouse, RelativeX: 5, RelativeY: 0}},
			})
		}
	}()
	go func() {
		defer wg.Done()
		_ = plexer.Send(choreographer.MotionArgs{
			Source:    choreographer.SourceTouchscreen,
			DeviceID:  2,
			DisplayID: 0,
			Action:    choreographer.ActionDown,
			Pointers:  []choreographer.PointerData{{ID: 0, ToolType: choreographer.ToolFinger}},
		})
	}()

	go func() {
		wg.Wait()
		plexer.Close()
	}()

	for ev := range events {
		c.Notify(ev)
	}
}

// runRepl starts an interactive repl for inspecting and mutating the
// running choreographer, in the same line-oriented style as the teacher's
// own repl runner.
func runRepl(c *choreographer.Choreographer) {
	commandRepl := repl.NewRepl(wrappers.NewReaderWrapper(os.Stdin), wrappers.NewWriterWrapper(os.Stdout))
	logrus.Debugln("starting repl")
	_ = commandRepl.Run(func(input string, r *repl.Repl) (string, error) {
		var cmd, args string
		util.Unpack(strings.SplitN(input, " ", 2), &cmd, &args)

		switch cmd {
		case "quit":
			return "bye", fmt.Errorf("normal stop")
		case "check":
			if err := c.CheckInvariants(); err != nil {
				return "invariant violation: " + err.Error(), nil
			}
			return "ok", nil
		case "set-default-display":
			id, err := strconv.Atoi(strings.TrimSpace(args))
			if err != nil {
				return "", fmt.Errorf("parsing display id %q: %w", args, err)
			}
			c.SetDefaultMouseDisplayID(choreographer.DisplayID(id))
			return "ok", nil
		case "set-show-touches":
			c.SetShowTouchesEnabled(strings.TrimSpace(args) == "true")
			return "ok", nil
		case "set-stylus-icon":
			c.SetStylusPointerIconEnabled(strings.TrimSpace(args) == "true")
			return "ok", nil
		default:
			return "unknown command: " + cmd, nil
		}
	})
}
