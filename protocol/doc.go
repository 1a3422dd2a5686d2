// Package protocol implements the Fortelion battery module UART protocol.
//
// This package builds request frames, validates response frames and decodes
// the physical quantities they carry. It performs no I/O; see package uart
// for the serial link and package bms for the request/response exchange.
//
// # Protocol Overview
//
// The leader sends a fixed-size command frame and the battery module answers
// with a data frame whose payload length is fixed per command:
//
//	Command:  [START(0x05)][LEADER(0x01)][CMD][LEN(0x00)][CHECKSUM]
//	Response: [START(0x02)][LEADER(0x01)][CMD][LEN][DATA...][CHECKSUM][RESERVED]
//
// Where:
//   - CHECKSUM = XOR of every preceding byte of the frame
//   - RESERVED = one trailing byte that is read but never interpreted
//   - multi-byte values in DATA are big-endian
//
// The link runs at 38400 baud, 8 data bits, even parity, 1 stop bit.
//
// # Command Builders
//
//	frame, err := protocol.BuildCommandFrame(protocol.CmdSummaryData)
//
// # Response Frames
//
// A DataFrame is sized from the expected command, filled by the transport
// and validated before anything is decoded:
//
//	frame := protocol.NewDataFrame(protocol.CmdSummaryData)
//	// ... read frame.Len() bytes into frame.Bytes() ...
//	view, err := protocol.NewFrameView(frame)
//	if err != nil {
//	    return err // *FrameError
//	}
//	soc, err := view.RelativeStateOfCharge()
//
// # Layouts
//
// Several quantities are reported by more than one command, at different
// offsets and with different scale factors. Dedicated commands carry a
// single quantity as their whole payload, BM information (0x10) and summary
// data (0x20) carry many quantities each. FrameView picks the layout from
// the frame's response command; a quantity the command does not carry
// yields a *NoAppropriateDataError listing the commands that do.
//
// # Error Handling
//
//	view, err := protocol.NewFrameView(frame)
//	var fe *protocol.FrameError
//	if errors.As(err, &fe) {
//	    // fe.Rule is the first failed check, e.g. RuleChecksum
//	    // err.Error() returns: "fortelion: invalid data frame for current(0x03): invalid checksum (must be 0xD4, received 0xFF)"
//	}
package protocol
