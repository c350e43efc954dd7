// Package interleaver implements the 802.11a bit interleaver: a
// two-stage permutation (first across subcarriers, then within
// adjacent groups sized by the modulation depth) applied to one
// coded-bit block at a time. Deinterleave is the inverse permutation.
// Both tables are precomputed per rate.
package interleaver

import "github.com/dot11a/ofdmphy/pkg/rate"

// Table is a precomputed permutation for one (cbps, bpsc) pair:
// Perm[k] is the output position of input bit k.
type Table struct {
	Cbps int
	Perm []int
}

var tables = map[rate.Rate]*Table{}

func init() {
	for _, r := range rate.All() {
		p := rate.Of(r)
		tables[r] = build(p.Cbps(), p.Bpsc)
	}
}

func build(cbps, bpsc int) *Table {
	s := max(bpsc/2, 1)
	perm := make([]int, cbps)
	for k := 0; k < cbps; k++ {
		i := (cbps/16)*(k%16) + k/16
		j := s*(i/s) + (i+cbps-(16*i)/cbps)%s
		perm[k] = j
	}
	return &Table{Cbps: cbps, Perm: perm}
}

// For returns the precomputed permutation table for r.
func For(r rate.Rate) *Table { return tables[r] }

// Interleave permutes one block of exactly t.Cbps coded bits.
func (t *Table) Interleave(in []byte) []byte {
	out := make([]byte, len(in))
	for k, v := range in {
		out[t.Perm[k]] = v
	}
	return out
}

// Deinterleave applies the inverse permutation of Interleave.
func (t *Table) Deinterleave(in []byte) []byte {
	out := make([]byte, len(in))
	for k := range in {
		out[k] = in[t.Perm[k]]
	}
	return out
}

// InterleaveBlocks applies Interleave to consecutive blocks of
// t.Cbps bits across a longer coded stream.
func (t *Table) InterleaveBlocks(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for off := 0; off+t.Cbps <= len(in); off += t.Cbps {
		out = append(out, t.Interleave(in[off:off+t.Cbps])...)
	}
	return out
}

// DeinterleaveBlocks applies Deinterleave to consecutive blocks of
// t.Cbps bits across a longer coded stream.
func (t *Table) DeinterleaveBlocks(in []byte) []byte {
	out := make([]byte, 0, len(in))
	for off := 0; off+t.Cbps <= len(in); off += t.Cbps {
		out = append(out, t.Deinterleave(in[off:off+t.Cbps])...)
	}
	return out
}
