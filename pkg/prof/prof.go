//go:build profile

package prof

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/ardnew/softmatrix/pkg"
)

var (
	mu     sync.Mutex
	active bool
)

// Capture is a running profile capture.
type Capture struct {
	dir string
	cpu *os.File
}

// Enabled reports whether profiling is compiled in.
func Enabled() bool { return true }

// Start begins CPU profiling into dir, creating it if needed.
func Start(dir string) (*Capture, error) {
	mu.Lock()
	defer mu.Unlock()
	if active {
		return nil, ErrActive
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profile dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, CPUFile))
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	active = true
	pkg.LogInfo(pkg.ComponentCLI, "profiling", "dir", dir)
	return &Capture{dir: dir, cpu: f}, nil
}

// Stop ends CPU profiling and writes the heap and goroutine snapshots.
// Stop on a stopped capture is a no-op.
func (c *Capture) Stop() error {
	mu.Lock()
	defer mu.Unlock()
	if c.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := c.cpu.Close()
	c.cpu = nil
	active = false

	runtime.GC()
	err = errors.Join(err,
		c.snapshot("heap", HeapFile, 0),
		c.snapshot("goroutine", GoroutineFile, 1))
	return err
}

func (c *Capture) snapshot(name, file string, debug int) error {
	p := pprof.Lookup(name)
	if p == nil {
		return fmt.Errorf("%w: profile %q", pkg.ErrNotSupported, name)
	}
	f, err := os.Create(filepath.Join(c.dir, file))
	if err != nil {
		return err
	}
	defer f.Close()
	return p.WriteTo(f, debug)
}
