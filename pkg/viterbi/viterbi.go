// Package viterbi implements the mandatory K=7, rate-1/2 convolutional
// code (generator polynomials 0o171/0o133 = 121/91 decimal): encoding
// with a 6-bit shift register, and soft-decision maximum-likelihood
// Viterbi decoding with traceback from the terminating zero state.
//
// A scalar butterfly is used throughout. Spec §9 permits an optional
// packed-byte SIMD butterfly kernel as a legitimate optimization, but
// only the decoded-output contract is mandated, not the kernel, so
// this implementation does not vectorize.
package viterbi

const (
	ConstraintLength = 7
	NumStates        = 1 << (ConstraintLength - 1) // 64
	Gen0             = 0o171 // 121 decimal
	Gen1             = 0o133 // 91 decimal

	// MetricThreshold triggers normalization (subtracting the running
	// minimum from every path metric) once any metric crosses it, to
	// prevent unbounded growth over a long traceback.
	MetricThreshold = 1 << 20
)

func nextState(state, input int) int {
	return ((input << 5) | (state >> 1)) & 0x3F
}

func parity(v int) byte {
	p := 0
	for v != 0 {
		p ^= v & 1
		v >>= 1
	}
	return byte(p)
}

func outputs(state, input int) (b0, b1 byte) {
	reg := (input << 6) | state
	return parity(reg & Gen0), parity(reg & Gen1)
}

type transition struct {
	prevState int
	input     byte
	out0      byte
	out1      byte
}

// prevOf[ns] holds the (at most 2) transitions that lead into state ns.
var prevOf [NumStates][]transition

func init() {
	for s := 0; s < NumStates; s++ {
		for in := 0; in < 2; in++ {
			ns := nextState(s, in)
			o0, o1 := outputs(s, in)
			prevOf[ns] = append(prevOf[ns], transition{prevState: s, input: byte(in), out0: o0, out1: o1})
		}
	}
}

// Encode convolutionally encodes inputBits (already including any
// tail bits the caller appended) at rate 1/2, returning 2*len(inputBits)
// coded bits, output bit0 then bit1 per input bit.
func Encode(inputBits []byte) []byte {
	out := make([]byte, 0, len(inputBits)*2)
	state := 0
	for _, bit := range inputBits {
		in := int(bit & 1)
		b0, b1 := outputs(state, in)
		out = append(out, b0, b1)
		state = nextState(state, in)
	}
	return out
}

func branchMetric(soft, expected byte) uint32 {
	d := int32(soft) - int32(expected)*255
	if d < 0 {
		d = -d
	}
	return uint32(d)
}

// Decode runs soft-decision Viterbi decoding over soft, a sequence of
// 2*nSteps soft values (0..255, pairs of (out0,out1) per trellis
// step), and returns nSteps decoded bits via traceback from
// terminating state 0.
func Decode(soft []byte) []byte {
	nSteps := len(soft) / 2
	if nSteps == 0 {
		return nil
	}

	metrics := make([]uint32, NumStates)
	for i := 1; i < NumStates; i++ {
		metrics[i] = MetricThreshold * 4
	}

	decisions := make([][NumStates]byte, nSteps) // which prevOf[ns] entry won

	for t := 0; t < nSteps; t++ {
		s0, s1 := soft[2*t], soft[2*t+1]
		newMetrics := make([]uint32, NumStates)
		minMetric, maxMetric := ^uint32(0), uint32(0)
		for ns := 0; ns < NumStates; ns++ {
			cands := prevOf[ns]
			best := ^uint32(0)
			bestIdx := byte(0)
			for idx, tr := range cands {
				bm := branchMetric(s0, tr.out0) + branchMetric(s1, tr.out1)
				m := metrics[tr.prevState] + bm
				if m < best {
					best = m
					bestIdx = byte(idx)
				}
			}
			newMetrics[ns] = best
			decisions[t][ns] = bestIdx
			if best < minMetric {
				minMetric = best
			}
			if best > maxMetric {
				maxMetric = best
			}
		}
		if maxMetric > MetricThreshold {
			for i := range newMetrics {
				newMetrics[i] -= minMetric
			}
		}
		metrics = newMetrics
	}

	out := make([]byte, nSteps)
	state := 0 // terminating state: encoder was tail-forced to zero
	for t := nSteps - 1; t >= 0; t-- {
		idx := decisions[t][state]
		tr := prevOf[state][idx]
		out[t] = tr.input
		state = tr.prevState
	}
	return out
}
