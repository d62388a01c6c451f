package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner/hal/sim"
)

// stroke is the set of cells closed together to type one character.
type stroke []keymap.Cell

// plan returns the strokes that type text on a C16 keyboard in symbolic
// mode.
func plan(text string) ([]stroke, error) {
	var out []stroke
	for i := 0; i < len(text); i++ {
		c := text[i]
		k := matrix.ASCII(c)
		if c == '\n' {
			k = keymap.KeyEnter
		}
		if cell, ok := keymap.C16Symbolic.Find(k); ok {
			out = append(out, stroke{cell})
			continue
		}
		if cell, ok := keymap.C16SymbolicShifted.Find(k); ok {
			out = append(out, stroke{keymap.C16ShiftCell, cell})
			continue
		}
		return nil, fmt.Errorf("%w: no key types %q", pkg.ErrUnmappedKey, c)
	}
	return out, nil
}

// typeText presses and releases the keys for text on board, holding each
// stroke for hold.
func typeText(ctx context.Context, board *sim.Board, text string, hold time.Duration) error {
	strokes, err := plan(text)
	if err != nil {
		return err
	}
	for _, s := range strokes {
		for _, c := range s {
			if err := board.Press(c.Row, c.Col); err != nil {
				return err
			}
		}
		if err := sleep(ctx, hold); err != nil {
			board.ReleaseKeys()
			return err
		}
		board.ReleaseKeys()
		if err := sleep(ctx, hold); err != nil {
			return err
		}
	}
	return nil
}
