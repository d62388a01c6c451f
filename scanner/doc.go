// Package scanner turns the electrical state of a key matrix into key
// events.
//
// # Scanners
//
// Two implementations of [Scanner] are provided:
//
//   - [Active] drives the matrix itself, one row at a time, and trusts the
//     result only after [ActiveConfig.Debounce] identical passes.
//   - [Passive] owns no lines. It snoops the host computer's own keyboard
//     scan through a pin-change interrupt and reconstructs the matrix from
//     the samples with a [Decoder].
//
// Both hand the stable matrix to a [keymap.Mapper], which fills the
// caller's [matrix.Buffer].
//
// # Polling
//
// Scanners never block and keep no goroutines. A [Poller] calls Loop often
// and Scan at a fixed interval, then reports the keys released and pressed
// since the previous stable scan to a [Sink]:
//
//	s := scanner.NewActive(board.RowPort(), board.ColPort(), mapper, scanner.ActiveConfig{})
//	if err := s.Begin(); err != nil {
//	    return err
//	}
//	defer s.End()
//
//	p := scanner.NewPoller(s, sink, scanner.PollerConfig{})
//	return p.Run(ctx)
//
// # Concurrency
//
// A scanner belongs to one polling goroutine. The only state shared with
// another context is the sample queue of [Passive], which [Passive.Capture]
// fills from interrupt context.
package scanner
