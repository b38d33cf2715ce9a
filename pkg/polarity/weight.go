package polarity

import (
	"errors"
	"strings"
)

var (
	// ErrBlankToken is returned for a blank onset or first-motion column.
	ErrBlankToken = errors.New("blank token")
	// ErrUnknownToken is returned for a token outside the vocabulary.
	ErrUnknownToken = errors.New("unknown token")
)

// weightCodes maps hypoinverse quality codes to pick weights. Codes 4-9
// mean "not used" and get zero weight.
var weightCodes = map[string]float64{
	"0": 1.0, "1": 0.5, "2": 0.2, "3": 0.1,
	"4": 0, "5": 0, "6": 0, "7": 0, "8": 0, "9": 0,
}

// WeightPolicy assigns pick weights from onset quality.
type WeightPolicy struct {
	// Impulsive is the weight of impulsive (I) onsets.
	Impulsive float64
	// Emergent is the weight of emergent (E) onsets.
	Emergent float64
}

// DefaultWeightPolicy returns weights 1.0 for impulsive and 0.5 for
// emergent onsets.
func DefaultWeightPolicy() WeightPolicy {
	return WeightPolicy{Impulsive: 1.0, Emergent: 0.5}
}

// Onset returns the weight of an onset token. Accepted tokens are
// I, E and the QuakeML labels impulsive, emergent, in any case.
func (w WeightPolicy) Onset(token string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "i", "impulsive":
		return w.Impulsive, nil
	case "e", "emergent":
		return w.Emergent, nil
	case "":
		return 0, ErrBlankToken
	default:
		return 0, ErrUnknownToken
	}
}

// WeightCode returns the weight of a numeric hypoinverse quality code.
// A blank code is code 0, as in hypoinverse.
func WeightCode(token string) (float64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		token = "0"
	}
	if res, ok := weightCodes[token]; ok {
		return res, nil
	}
	return 0, ErrUnknownToken
}

// FirstMotionSign returns +1 for upward and -1 for downward first
// motion. Upward tokens are U, +, up, positive; downward tokens are
// D, -, down, negative.
func FirstMotionSign(token string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "u", "+", "up", "positive":
		return 1, nil
	case "d", "-", "down", "negative":
		return -1, nil
	case "":
		return 0, ErrBlankToken
	default:
		return 0, ErrUnknownToken
	}
}
