package protocol

import "encoding/binary"

// cutSlice returns data[offset:offset+length] or a DataBytesShortageError
// when the window does not fit.
func cutSlice(data []byte, offset, length int, what string) ([]byte, error) {
	if offset < 0 || length < 0 || len(data) < offset+length {
		return nil, &DataBytesShortageError{What: what, Need: offset + length, Have: len(data)}
	}
	return data[offset : offset+length], nil
}

// bytesToUint16 decodes the first two bytes as a big-endian unsigned integer.
func bytesToUint16(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, &DataBytesShortageError{What: "uint16", Need: 2, Have: len(b)}
	}
	return binary.BigEndian.Uint16(b), nil
}

// bytesToInt16 decodes the first two bytes as a big-endian two's complement integer.
func bytesToInt16(b []byte) (int16, error) {
	v, err := bytesToUint16(b)
	if err != nil {
		return 0, &DataBytesShortageError{What: "int16", Need: 2, Have: len(b)}
	}
	return int16(v), nil
}
