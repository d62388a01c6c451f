// Package sim implements the scanner HAL in software.
//
// It is primarily intended for testing and for running the scanners on a
// workstation without keyboard hardware.
//
// # Board
//
// A [Board] is a simulated key matrix. Tests close and open switches with
// [Board.Press] and [Board.Release], and [Board.Bounce] injects contact
// chatter. The active scanner drives the board through [Board.RowPort] and
// senses it through [Board.ColPort]:
//
//	board := sim.NewBoard()
//	s := scanner.NewActive(board.RowPort(), board.ColPort(), mapper, scanner.ActiveConfig{})
//	board.Press(1, 2)
//
// # Host
//
// A [Host] plays the computer the keyboard is plugged into. Each
// [Host.Pass] drives the board the way the C16 KERNAL does, and every level
// change on the host's lines raises the pin-change handler, so a passive
// scanner sees the same sample stream it would see on real hardware:
//
//	host := sim.NewHost(board)
//	s := scanner.NewPassive(host.RowPort(), host.ColPort(), host.Interrupt(), mapper)
//	go host.Run(ctx, 20*time.Millisecond)
package sim
