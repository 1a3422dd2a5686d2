package protocol

// Checksum computes the 8-bit frame checksum: the XOR of every byte.
//
// The same function is used to seal an outbound command frame and to verify
// an inbound data frame. For a data frame the checksum covers every byte
// from the start code through the last payload byte.
//
// Example (Current response carrying 1234 mA):
//
//	Checksum([]byte{0x02, 0x01, 0x03, 0x02, 0x04, 0xD2}) // 0xD4
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
