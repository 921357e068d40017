package scoring

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score is a numeric grade input whose JSON decoding never fails. Values that
// cannot be read as a finite number decode to 0.
type Score float64

// UnmarshalJSON accepts numbers, numeric strings and booleans.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		*s = 0
		return nil
	}
	*s = Score(toNumber(raw))
	return nil
}

// Float returns the score as a finite float64.
func (s Score) Float() float64 {
	return finite(float64(s))
}

// toNumber coerces loosely typed values the way the grading payloads expect:
// anything unreadable becomes 0.
func toNumber(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case Score:
		return n.Float()
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return finite(f)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// roundHalfUp rounds to the nearest integer with ties going toward positive
// infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	v = finite(v)
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}

// round2 rounds to two decimal places, ties up.
func round2(v float64) float64 {
	return finite(roundHalfUp(v*100) / 100)
}

// NormalizeRawScore converts score/total into a percentage rounded to two
// decimals. A missing or non-positive total yields 0.
func NormalizeRawScore(score, total float64) float64 {
	total = finite(total)
	if total <= 0 {
		return 0
	}
	return round2(finite(score) / total * 100)
}
