package motion

import (
	"errors"
	"sort"
)

var (
	ErrRangeLength = errors.New("motion: input and output ranges must have the same length of at least 2")
	ErrRangeOrder  = errors.New("motion: input range must be strictly increasing")
)

// Interpolator maps a value through a piecewise-linear curve. Inputs outside
// the input range are clamped to the nearest endpoint.
type Interpolator struct {
	in  []float64
	out []float64
}

func NewInterpolator(in, out []float64) (*Interpolator, error) {
	if len(in) < 2 || len(in) != len(out) {
		return nil, ErrRangeLength
	}
	for i := 1; i < len(in); i++ {
		if in[i] <= in[i-1] {
			return nil, ErrRangeOrder
		}
	}
	return &Interpolator{
		in:  append([]float64(nil), in...),
		out: append([]float64(nil), out...),
	}, nil
}

// MustInterpolator is NewInterpolator for ranges known at compile time.
func MustInterpolator(in, out []float64) *Interpolator {
	ip, err := NewInterpolator(in, out)
	if err != nil {
		panic(err)
	}
	return ip
}

func (ip *Interpolator) Map(v float64) float64 {
	last := len(ip.in) - 1
	if v <= ip.in[0] {
		return ip.out[0]
	}
	if v >= ip.in[last] {
		return ip.out[last]
	}

	// first index with in[i] > v; v sits in segment [i-1, i]
	i := sort.Search(len(ip.in), func(i int) bool { return ip.in[i] > v })
	lo, hi := ip.in[i-1], ip.in[i]
	t := (v - lo) / (hi - lo)
	return ip.out[i-1] + t*(ip.out[i]-ip.out[i-1])
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
