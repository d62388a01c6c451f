package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/ardnew/softmatrix/matrix"
	"github.com/ardnew/softmatrix/pkg"
)

// Poller defaults.
const (
	DefaultPollInterval = 15 * time.Millisecond
	DefaultLoopInterval = time.Millisecond
)

// Sink receives the changes between consecutive stable scans. For each scan
// the poller reports every release, then every press, then one Commit.
type Sink interface {
	Press(ev matrix.KeyEvent) error
	Release(ev matrix.KeyEvent) error
	Commit() error
}

// PollerConfig tunes a Poller. Zero fields take their defaults.
type PollerConfig struct {
	// Interval is the time between Scan calls.
	Interval time.Duration

	// LoopInterval is the time between Loop calls in between scans.
	LoopInterval time.Duration
}

func (c PollerConfig) withDefaults() PollerConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultPollInterval
	}
	if c.LoopInterval <= 0 {
		c.LoopInterval = DefaultLoopInterval
	}
	return c
}

// PollerStats counts scan outcomes.
type PollerStats struct {
	Complete   uint64
	InProgress uint64
	Errors     uint64
	Presses    uint64
	Releases   uint64
}

// Poller drives a Scanner and forwards the key changes to a Sink.
type Poller struct {
	scanner Scanner
	sink    Sink
	cfg     PollerConfig

	// Events reported to the sink as held.
	held matrix.Buffer
	next matrix.Buffer

	mutex   sync.Mutex
	running bool
	stats   PollerStats
}

// NewPoller returns a poller for a scanner that has already begun.
func NewPoller(s Scanner, sink Sink, cfg PollerConfig) *Poller {
	return &Poller{
		scanner: s,
		sink:    sink,
		cfg:     cfg.withDefaults(),
	}
}

// Poll scans once. On StatusComplete it reports the difference from the
// previous complete scan to the sink and returns the first sink error.
func (p *Poller) Poll() (Status, error) {
	st := p.scanner.Scan(&p.next)

	p.mutex.Lock()
	switch st {
	case StatusComplete:
		p.stats.Complete++
	case StatusInProgress:
		p.stats.InProgress++
	default:
		p.stats.Errors++
	}
	p.mutex.Unlock()

	switch st {
	case StatusComplete:
		return st, p.report()
	case StatusInProgress:
		return st, nil
	default:
		return st, pkg.ErrNotStarted
	}
}

// report sends releases, presses and a commit for the change from held to
// next, then makes next the held set.
func (p *Poller) report() error {
	if p.held.Equal(&p.next) {
		return nil
	}

	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	var releases, presses uint64
	for _, ev := range p.held.Events() {
		if !contains(&p.next, ev) {
			keep(p.sink.Release(ev))
			releases++
		}
	}
	for _, ev := range p.next.Events() {
		if !contains(&p.held, ev) {
			keep(p.sink.Press(ev))
			presses++
		}
	}
	if releases+presses > 0 {
		keep(p.sink.Commit())
		pkg.LogDebug(pkg.ComponentPoller, "keys changed",
			"pressed", presses, "released", releases, "held", p.next.Len())
	}

	p.mutex.Lock()
	p.held = p.next
	p.stats.Presses += presses
	p.stats.Releases += releases
	p.mutex.Unlock()
	return first
}

func contains(b *matrix.Buffer, ev matrix.KeyEvent) bool {
	return b.FindFunc(func(e matrix.KeyEvent) bool { return e == ev }) >= 0
}

// Flush reports every held key as released.
func (p *Poller) Flush() error {
	p.next.Reset()
	return p.report()
}

// Held returns the events last reported as pressed.
func (p *Poller) Held() []matrix.KeyEvent {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]matrix.KeyEvent(nil), p.held.Events()...)
}

// Stats returns the scan counters.
func (p *Poller) Stats() PollerStats {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.stats
}

// IsRunning reports whether Run is active.
func (p *Poller) IsRunning() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.running
}

// Run calls Loop every LoopInterval and Poll every Interval until ctx is
// done. Held keys are released before Run returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.mutex.Lock()
	if p.running {
		p.mutex.Unlock()
		return pkg.ErrAlreadyRunning
	}
	p.running = true
	p.mutex.Unlock()

	defer func() {
		p.mutex.Lock()
		p.running = false
		p.mutex.Unlock()
	}()

	scan := time.NewTicker(p.cfg.Interval)
	defer scan.Stop()
	loop := time.NewTicker(p.cfg.LoopInterval)
	defer loop.Stop()

	pkg.LogDebug(pkg.ComponentPoller, "poller started",
		"interval", p.cfg.Interval, "loop", p.cfg.LoopInterval)

	for {
		select {
		case <-ctx.Done():
			if err := p.Flush(); err != nil {
				pkg.LogWarn(pkg.ComponentPoller, "error releasing held keys", "error", err)
			}
			pkg.LogDebug(pkg.ComponentPoller, "poller stopped")
			return ctx.Err()
		case <-scan.C:
			st, err := p.Poll()
			if err != nil {
				pkg.LogWarn(pkg.ComponentPoller, "scan failed", "status", st, "error", err)
			}
		case <-loop.C:
			p.scanner.Loop()
		}
	}
}
