package interleaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/dot11a/ofdmphy/pkg/rate"
)

func TestRoundTrip(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	for _, r := range rate.All() {
		tbl := For(r)
		blocks := 5
		in := make([]byte, tbl.Cbps*blocks)
		for i := range in {
			in[i] = byte(src.Intn(2))
		}
		out := tbl.DeinterleaveBlocks(tbl.InterleaveBlocks(in))
		assert.Equal(t, in, out)
	}
}

func TestPermutationIsBijective(t *testing.T) {
	for _, r := range rate.All() {
		tbl := For(r)
		seen := make([]bool, tbl.Cbps)
		for _, p := range tbl.Perm {
			assert.False(t, seen[p])
			seen[p] = true
		}
	}
}
