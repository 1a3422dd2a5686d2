package protocol

// DataFrame is a receive buffer for one response from the battery module.
//
// Response frame structure:
//
//	[START(0x02)][LEADER(0x01)][CMD][LEN][DATA...][CHECKSUM][RESERVED]
//
// The buffer is sized from the expected response command when the frame is
// created and is filled in place by the transport through Bytes. Its
// contents are meaningful only after Validate succeeds.
type DataFrame struct {
	command Command
	buf     []byte
}

// NewDataFrame allocates a zeroed frame sized for the response to cmd:
// DataFrameOverhead + cmd.DataLength() bytes. A frame for a command outside
// the catalog never validates.
//
// Example:
//
//	frame := protocol.NewDataFrame(protocol.CmdSummaryData)
//	if _, err := io.ReadFull(port, frame.Bytes()); err != nil {
//	    return err
//	}
//	if err := frame.Validate(); err != nil {
//	    return err
//	}
func NewDataFrame(cmd Command) *DataFrame {
	return &DataFrame{
		command: cmd,
		buf:     make([]byte, DataFrameOverhead+cmd.DataLength()),
	}
}

// Command returns the response command the frame is expected to carry.
func (f *DataFrame) Command() Command {
	return f.command
}

// Bytes returns the whole frame buffer. The transport writes the received
// bytes into it; the slice aliases the frame.
func (f *DataFrame) Bytes() []byte {
	return f.buf
}

// Len returns the total frame length in bytes.
func (f *DataFrame) Len() int {
	return len(f.buf)
}

// Payload returns the data bytes between the 4-byte header and the trailing
// checksum and reserved bytes. It does not validate the frame.
func (f *DataFrame) Payload() []byte {
	return f.buf[DataOffset : DataOffset+f.command.DataLength()]
}

// Validate checks the frame structure and checksum. The checks run in a
// fixed order and stop at the first failure:
//  1. the expected command is in the catalog
//  2. start code is DataFrameStartCode
//  3. leader ID is LeaderID
//  4. response command matches the expected command
//  5. number of data matches the command's data length
//  6. checksum matches the XOR of every preceding byte
//
// Failures are returned as *FrameError. The result is never cached.
func (f *DataFrame) Validate() error {
	if !f.command.Valid() {
		return f.fail(RuleUnsupportedCommand, 0, f.command.Code())
	}

	dataLen := f.command.DataLength()

	if f.buf[startCodeIndex] != DataFrameStartCode {
		return f.fail(RuleStartCode, DataFrameStartCode, f.buf[startCodeIndex])
	}

	if f.buf[leaderIDIndex] != LeaderID {
		return f.fail(RuleLeaderID, LeaderID, f.buf[leaderIDIndex])
	}

	if f.buf[commandIndex] != f.command.Code() {
		return f.fail(RuleResponseCommand, f.command.Code(), f.buf[commandIndex])
	}

	if f.buf[lengthIndex] != byte(dataLen) {
		return f.fail(RuleDataLength, byte(dataLen), f.buf[lengthIndex])
	}

	checksumIndex := DataOffset + dataLen
	expected := Checksum(f.buf[:checksumIndex])
	if f.buf[checksumIndex] != expected {
		return f.fail(RuleChecksum, expected, f.buf[checksumIndex])
	}

	return nil
}

func (f *DataFrame) fail(rule Rule, expected, received byte) error {
	return &FrameError{
		Command:  f.command,
		Rule:     rule,
		Expected: expected,
		Received: received,
	}
}
