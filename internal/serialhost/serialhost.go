// Package serialhost implements the supervisory host interface of spec
// §6, ROOT only: printable ASCII lines out (ACK/LIGHT reports) and
// newline-terminated textual commands in (WATER, LIGHTBULBS). The
// real deployment speaks this over a physical serial line; for a
// terminal-driven demo it runs over stdin/stdout via peterh/liner, the
// same interactive-shell library the teacher's CLI client used.
package serialhost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"

	"DodagMesh/internal/logger"
)

// Host mirrors output lines to any number of registered sinks (stdout,
// a websocket dashboard mirror) and reads commands from an interactive
// prompt, handing each recognized line to onCommand.
type Host struct {
	log       logger.Logger
	prompt    *liner.State
	sinks     []func(line string)
	onCommand func(line string)
}

// New constructs a Host. onCommand is called once per newline-terminated
// input line; recognizing WATER/LIGHTBULBS and ignoring anything else is
// the caller's responsibility (spec §6), since the host itself is a
// dumb terminal.
func New(log logger.Logger, onCommand func(line string)) *Host {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return &Host{log: log, prompt: l, onCommand: onCommand}
}

// AddSink registers an additional destination for outbound lines, e.g.
// the websocket dashboard mirror.
func (h *Host) AddSink(fn func(line string)) {
	h.sinks = append(h.sinks, fn)
}

// Print emits one of the three output kinds of spec §6 to stdout and
// every registered sink.
func (h *Host) Print(line string) {
	fmt.Println(line)
	for _, sink := range h.sinks {
		sink(line)
	}
}

// Run reads commands until the prompt is closed (EOF or an unrecoverable
// read error), dispatching each trimmed, non-empty line to onCommand.
func (h *Host) Run() error {
	defer h.prompt.Close()
	for {
		input, err := h.prompt.Prompt("mesh> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			return err
		}
		h.prompt.AppendHistory(input)
		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}
		h.onCommand(line)
	}
}

// Close releases the underlying terminal.
func (h *Host) Close() error {
	return h.prompt.Close()
}
