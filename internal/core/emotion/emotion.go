// Package emotion defines the label taxonomies produced by the classifiers
// and small helpers for working with score distributions.
//
// Two schemes are supported. The "normal" scheme is the coarse
// positive/neutral/negative split; the "ekman" scheme is the six basic
// emotions plus neutral. Label order within a scheme is significant: it is
// the order scores are reported in and the tie-break order for ArgMax
package emotion

import "math"

// Scheme names a label taxonomy
type Scheme string

// Supported schemes
const (
	SchemeNormal Scheme = "normal"
	SchemeEkman  Scheme = "ekman"
)

// Labels per scheme, in canonical order
var (
	NormalLabels = []string{"positive", "neutral", "negative"}
	EkmanLabels  = []string{"anger", "disgust", "fear", "joy", "sadness", "surprise", "neutral"}
)

// Valid reports whether s names a known scheme
func (s Scheme) Valid() bool { return s == SchemeNormal || s == SchemeEkman }

// Labels returns the canonical label order for the scheme, or nil when
// the scheme is unknown
func (s Scheme) Labels() []string {
	switch s {
	case SchemeNormal:
		return NormalLabels
	case SchemeEkman:
		return EkmanLabels
	default:
		return nil
	}
}

// Schemes lists every supported scheme
func Schemes() []Scheme { return []Scheme{SchemeNormal, SchemeEkman} }

// Distribution maps labels to scores. Scores are expected to be
// non-negative and roughly sum to one, but nothing here enforces that
type Distribution map[string]float64

// Round5 rounds v to five decimal places, the precision scores are stored at
func Round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// Round rounds every score in d to five decimal places, in place,
// and returns d for chaining
func (d Distribution) Round() Distribution {
	for k, v := range d {
		d[k] = Round5(v)
	}
	return d
}

// ArgMax returns the dominant label of d and its score, walking labels in
// the scheme's canonical order so ties resolve deterministically.
// It returns ok=false when d is empty or carries none of the scheme's labels
func ArgMax(s Scheme, d Distribution) (label string, score float64, ok bool) {
	for _, l := range s.Labels() {
		v, present := d[l]
		if !present {
			continue
		}
		if !ok || v > score {
			label, score, ok = l, v, true
		}
	}
	return label, score, ok
}
