package scrambler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestSelfSynchronizingRoundTrip(t *testing.T) {
	src := rand.New(rand.NewSource(11))
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(src.Intn(2))
	}

	scrambled := append([]byte(nil), data...)
	New().Apply(scrambled)
	assert.NotEqual(t, data, scrambled)

	descrambled := append([]byte(nil), scrambled...)
	New().Apply(descrambled)
	assert.Equal(t, data, descrambled)
}

func TestSameSeedProducesSameSequence(t *testing.T) {
	a := New()
	b := NewSeeded(FixedSeed)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.NextBit(), b.NextBit())
	}
}
