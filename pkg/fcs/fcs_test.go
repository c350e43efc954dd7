package fcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyAcceptsMatchingCRC(t *testing.T) {
	service := [2]byte{0, 0}
	payload := []byte("the quick brown fox")
	crc := Compute(service, payload)
	assert.True(t, Verify(service, payload, crc))
}

func TestVerifyRejectsCorruptedPayload(t *testing.T) {
	service := [2]byte{0, 0}
	payload := []byte("the quick brown fox")
	crc := Compute(service, payload)

	corrupted := append([]byte(nil), payload...)
	corrupted[0] ^= 0xFF
	assert.False(t, Verify(service, corrupted, crc))
}
