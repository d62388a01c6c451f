package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ardnew/softmatrix/config"
	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
)

// ANSI styles used when writing to a terminal.
const (
	styleReset   = "\x1b[0m"
	stylePress   = "\x1b[32m"
	styleRelease = "\x1b[2m"
)

// printer is a scanner.Sink that writes one line per key change and a
// summary of the held keys on every commit.
type printer struct {
	w     io.Writer
	color bool
	held  []matrix.KeyEvent
}

func newPrinter(w io.Writer, color bool) *printer {
	return &printer{w: w, color: color}
}

func (p *printer) header(session uuid.UUID, cfg *config.Config, mode keymap.Mode) {
	fmt.Fprintf(p.w, "# session %s: %s scanner, %s board, %s keymap\n",
		session, cfg.Mode, cfg.Board, mode)
}

func (p *printer) line(style, verb string, ev matrix.KeyEvent) error {
	text := fmt.Sprintf("%-7s %-10s %-4s (%d,%d)", verb, keymap.Describe(ev.Key),
		keymap.CellName(ev.Row, ev.Col), ev.Row, ev.Col)
	if p.color {
		text = style + text + styleReset
	}
	_, err := fmt.Fprintln(p.w, strings.TrimRight(text, " "))
	return err
}

// Press implements scanner.Sink.
func (p *printer) Press(ev matrix.KeyEvent) error {
	p.held = append(p.held, ev)
	return p.line(stylePress, "press", ev)
}

// Release implements scanner.Sink.
func (p *printer) Release(ev matrix.KeyEvent) error {
	for i, h := range p.held {
		if h == ev {
			p.held = append(p.held[:i], p.held[i+1:]...)
			break
		}
	}
	return p.line(styleRelease, "release", ev)
}

// Commit implements scanner.Sink. Modifiers are listed first.
func (p *printer) Commit() error {
	names := make([]string, 0, len(p.held))
	for _, ev := range p.held {
		if keymap.IsModifier(ev.Key) {
			names = append(names, keymap.Describe(ev.Key))
		}
	}
	for _, ev := range p.held {
		if !keymap.IsModifier(ev.Key) {
			names = append(names, keymap.Describe(ev.Key))
		}
	}
	_, err := fmt.Fprintf(p.w, "held    [%s]\n", strings.Join(names, " "))
	return err
}
