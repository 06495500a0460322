package models

import (
	"errors"
	"math"
	"sort"
)

// Upper bound of any mark, max mark or structure entry
const MAX_MARK = 100000

var ErrNotFinite = errors.New("marks add up to a value out of range")

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Scores maps a category label (column, cotype, course) to a mark.
// Missing labels read as zero.
type Scores map[string]float64

func (s Scores) Get(label string) float64 {
	if s == nil {
		return 0
	}
	return s[label]
}

func (s Scores) Sum() float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s Scores) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s))
}

func (s Scores) Labels() []string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (s Scores) Clone() Scores {
	clone := make(Scores, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}
