package protocol

import "fmt"

// BuildCommandFrame constructs the request frame for a command.
//
// Frame structure:
//
//	[START(0x05)][LEADER(0x01)][CMD][LEN(0x00)][CHECKSUM]
//
// The checksum covers the four preceding bytes. Every supported command is
// sent without request data; a command that needs request data cannot be
// encoded by this builder and is rejected rather than sent with a wrong
// length byte.
func BuildCommandFrame(cmd Command) ([]byte, error) {
	if !cmd.Valid() {
		return nil, fmt.Errorf("unsupported command 0x%02X", byte(cmd))
	}
	if n := cmd.RequestDataLength(); n != 0 {
		return nil, fmt.Errorf("command %s requires %d bytes of request data, only empty requests are supported", cmd, n)
	}

	frame := make([]byte, 0, CommandFrameSize)

	frame = append(frame, CommandFrameStartCode)
	frame = append(frame, LeaderID)
	frame = append(frame, cmd.Code())
	frame = append(frame, byte(cmd.RequestDataLength()))

	frame = append(frame, Checksum(frame))

	return frame, nil
}
