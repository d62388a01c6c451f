//go:build !linux

package evdev

import (
	"context"

	"github.com/ardnew/softmatrix/keymap"
	"github.com/ardnew/softmatrix/pkg"
	"github.com/ardnew/softmatrix/scanner/hal/sim"
)

// Source feeds a Board from an input device.
type Source struct{}

// Open returns pkg.ErrNotSupported.
func Open(path string, board *sim.Board, positional *keymap.KeyMap) (*Source, error) {
	return nil, pkg.ErrNotSupported
}

// Name returns an empty string.
func (s *Source) Name() string { return "" }

// Run returns pkg.ErrNotSupported.
func (s *Source) Run(ctx context.Context) error { return pkg.ErrNotSupported }
