package scoring

import (
	"bytes"
	"encoding/json"
)

const (
	// FailingGradePoint is returned for failing composites and unmatched bands.
	FailingGradePoint = 5.00
	// FailingThreshold is the highest rounded composite that always fails.
	FailingThreshold = 73
)

// GradeBand maps a percentage range onto a grade point. A nil MinPercentage
// leaves the band open at the bottom.
type GradeBand struct {
	MinPercentage *float64 `json:"minPercentage"`
	MaxPercentage float64  `json:"maxPercentage"`
	GradePoint    float64  `json:"gradePoint"`
	Description   string   `json:"description,omitempty"`
}

// UnmarshalJSON reads both camelCase and PascalCase band keys.
func (b *GradeBand) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		*b = GradeBand{}
		return nil
	}
	band := GradeBand{}
	if v := pick(raw, "minPercentage", "MinPercentage"); v != nil {
		lower := toNumber(v)
		band.MinPercentage = &lower
	}
	band.MaxPercentage = toNumber(pick(raw, "maxPercentage", "MaxPercentage"))
	band.GradePoint = toNumber(pick(raw, "gradePoint", "GradePoint"))
	if desc, ok := pick(raw, "description", "Description").(string); ok {
		band.Description = desc
	}
	*b = band
	return nil
}

func pick(raw map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// upper returns the inclusive upper bound; an unset maximum means 100.
func (b GradeBand) upper() float64 {
	if hi := finite(b.MaxPercentage); hi != 0 {
		return hi
	}
	return 100
}

func (b GradeBand) point() float64 {
	if p := finite(b.GradePoint); p != 0 {
		return p
	}
	return FailingGradePoint
}

// Contains reports whether a rounded percentage falls inside the band.
func (b GradeBand) Contains(rounded float64) bool {
	if b.MinPercentage != nil && rounded < finite(*b.MinPercentage) {
		return false
	}
	return rounded <= b.upper()
}

// GradeScale is an ordered list of bands. The first matching band wins.
type GradeScale []GradeBand

// GradePoint classifies a rounded composite grade.
func (s GradeScale) GradePoint(rounded float64) float64 {
	if rounded <= FailingThreshold {
		return FailingGradePoint
	}
	for _, band := range s {
		if band.Contains(rounded) {
			return band.point()
		}
	}
	return FailingGradePoint
}
