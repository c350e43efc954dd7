package puncture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dot11a/ofdmphy/pkg/rate"
)

func TestDepunctureRecoversKeptPositions(t *testing.T) {
	for _, r := range rate.All() {
		groupLen, keep := patternFor(r)
		groups := 6
		coded := make([]byte, groupLen*groups)
		for i := range coded {
			coded[i] = byte((i%200)+1) % 255
		}

		punctured := Puncture(coded, r)
		depunctured := Depuncture(punctured, r, len(coded))

		assert.Len(t, depunctured, len(coded))
		keptSet := make(map[int]bool, len(keep))
		for _, k := range keep {
			keptSet[k] = true
		}
		for i := 0; i < len(coded); i++ {
			if keptSet[i%groupLen] {
				assert.Equal(t, coded[i], depunctured[i])
			} else {
				assert.Equal(t, byte(Erasure), depunctured[i])
			}
		}
	}
}
