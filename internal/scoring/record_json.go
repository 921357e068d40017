package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Records and items decoded from JSON keep the object they came from. Encoding
// writes that object back, so keys the engine does not read survive untouched.
// Only records the engine normalized rewrite their scored keys, and only the
// keys the input already had.

type (
	quizItemJSON          QuizItem
	classStandingItemJSON ClassStandingItem
	gradeRecordJSON       GradeRecord
)

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

// UnmarshalJSON reads a quiz entry. Malformed entries decode as empty quizzes.
func (q *QuizItem) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "quiz")
	if err != nil || obj == nil {
		*q = QuizItem{}
		return nil
	}
	*q = QuizItem{
		ID:             intField(obj, "id"),
		Label:          textField(obj, "label"),
		QuizScore:      scoreField(obj, "quizScore"),
		TotalQuizScore: scoreField(obj, "totalQuizScore"),
		raw:            obj,
	}
	return nil
}

// MarshalJSON writes the entry back over its source object.
func (q QuizItem) MarshalJSON() ([]byte, error) {
	if q.raw == nil {
		return json.Marshal(quizItemJSON(q))
	}
	return overlay(q.raw, map[string]interface{}{
		"quizScore":      q.QuizScore,
		"totalQuizScore": q.TotalQuizScore,
	})
}

// UnmarshalJSON reads a class-standing entry. Malformed entries decode as
// empty items.
func (cs *ClassStandingItem) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "class standing item")
	if err != nil || obj == nil {
		*cs = ClassStandingItem{}
		return nil
	}
	*cs = ClassStandingItem{
		ID:    intField(obj, "id"),
		Label: textField(obj, "label"),
		Score: scoreField(obj, "score"),
		Total: scoreField(obj, "total"),
		raw:   obj,
	}
	return nil
}

// MarshalJSON writes the item back over its source object.
func (cs ClassStandingItem) MarshalJSON() ([]byte, error) {
	if cs.raw == nil {
		return json.Marshal(classStandingItemJSON(cs))
	}
	return overlay(cs.raw, map[string]interface{}{
		"score": cs.Score,
		"total": cs.Total,
	})
}

// UnmarshalJSON reads a grade record. Identity fields are read loosely: a
// student id of "S-001" decodes as 0 here and is still written back verbatim.
func (r *GradeRecord) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "grade record")
	if err != nil {
		return err
	}
	if obj == nil {
		return nil
	}
	rec := GradeRecord{
		ID:               intField(obj, "id"),
		StudentID:        intField(obj, "studentId"),
		SubjectID:        intField(obj, "subjectId"),
		AcademicPeriodID: intField(obj, "academicPeriodId"),
		StudentNumber:    textField(obj, "studentNumber"),
		StudentFullName:  textField(obj, "studentFullName"),
		Department:       textField(obj, "department"),
		SubjectCode:      textField(obj, "subjectCode"),
		SubjectName:      textField(obj, "subjectName"),
		SubjectTeacher:   textField(obj, "subjectTeacher"),
		Semester:         textField(obj, "semester"),
		AcademicYear:     textField(obj, "academicYear"),
		RecitationScore:  scoreField(obj, "recitationScore"),
		AttendanceScore:  scoreField(obj, "attendanceScore"),
		SEPScore:         scoreField(obj, "sepScore"),
		ProjectScore:     scoreField(obj, "projectScore"),
		PrelimScore:      scoreField(obj, "prelimScore"),
		PrelimTotal:      scoreField(obj, "prelimTotal"),
		MidtermScore:     scoreField(obj, "midtermScore"),
		MidtermTotal:     scoreField(obj, "midtermTotal"),
		FinalsScore:      scoreField(obj, "finalsScore"),
		FinalsTotal:      scoreField(obj, "finalsTotal"),
		raw:              obj,
	}
	if data, ok := obj["quizzes"]; ok {
		var items []QuizItem
		if json.Unmarshal(data, &items) == nil {
			rec.Quizzes = items
		}
	}
	if data, ok := obj["classStandingItems"]; ok {
		var items []ClassStandingItem
		if json.Unmarshal(data, &items) == nil {
			rec.ClassStandingItems = items
		}
	}
	*r = rec
	return nil
}

// MarshalJSON writes a decoded record back as it was received, with scored
// keys rewritten when the engine normalized them.
func (r GradeRecord) MarshalJSON() ([]byte, error) {
	switch {
	case r.raw == nil:
		return json.Marshal(gradeRecordJSON(r))
	case !r.normalized:
		return json.Marshal(r.raw)
	default:
		return overlay(r.raw, r.scoredMembers())
	}
}

func (r GradeRecord) scoredMembers() map[string]interface{} {
	return map[string]interface{}{
		"quizzes":            r.Quizzes,
		"classStandingItems": r.ClassStandingItems,
		"recitationScore":    r.RecitationScore,
		"attendanceScore":    r.AttendanceScore,
		"sepScore":           r.SEPScore,
		"projectScore":       r.ProjectScore,
		"prelimScore":        r.PrelimScore,
		"prelimTotal":        r.PrelimTotal,
		"midtermScore":       r.MidtermScore,
		"midtermTotal":       r.MidtermTotal,
		"finalsScore":        r.FinalsScore,
		"finalsTotal":        r.FinalsTotal,
	}
}

// MarshalJSON merges the breakdown into the record object. Breakdown keys win.
func (g MidtermGrade) MarshalJSON() ([]byte, error) {
	if g.MidtermBreakdown == nil {
		return g.GradeRecord.MarshalJSON()
	}
	return mergeBreakdown(g.GradeRecord, g.MidtermBreakdown)
}

// UnmarshalJSON reads a record and, when present, its midterm breakdown.
func (g *MidtermGrade) UnmarshalJSON(data []byte) error {
	if err := g.GradeRecord.UnmarshalJSON(data); err != nil {
		return err
	}
	g.MidtermBreakdown = nil
	if _, ok := g.raw["totalMidtermGrade"]; !ok {
		return nil
	}
	g.MidtermBreakdown = &MidtermBreakdown{}
	return json.Unmarshal(data, g.MidtermBreakdown)
}

// MarshalJSON merges the breakdown into the record object. Breakdown keys win.
func (g FinalsGrade) MarshalJSON() ([]byte, error) {
	if g.FinalsBreakdown == nil {
		return g.GradeRecord.MarshalJSON()
	}
	return mergeBreakdown(g.GradeRecord, g.FinalsBreakdown)
}

// UnmarshalJSON reads a record and, when present, its finals breakdown.
func (g *FinalsGrade) UnmarshalJSON(data []byte) error {
	if err := g.GradeRecord.UnmarshalJSON(data); err != nil {
		return err
	}
	g.FinalsBreakdown = nil
	if _, ok := g.raw["totalFinalsGrade"]; !ok {
		return nil
	}
	g.FinalsBreakdown = &FinalsBreakdown{}
	return json.Unmarshal(data, g.FinalsBreakdown)
}

func mergeBreakdown(record GradeRecord, breakdown interface{}) ([]byte, error) {
	base, err := record.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	derived, err := json.Marshal(breakdown)
	if err != nil {
		return nil, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(derived, &members); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = make(map[string]json.RawMessage, len(members))
	}
	for key, value := range members {
		obj[key] = value
	}
	return json.Marshal(obj)
}

// overlay re-encodes obj with members replaced. Members obj does not already
// have are skipped.
func overlay(obj map[string]json.RawMessage, members map[string]interface{}) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(obj))
	for key, value := range obj {
		out[key] = value
	}
	for key, value := range members {
		if _, ok := out[key]; !ok {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = encoded
	}
	return json.Marshal(out)
}

func decodeObject(data []byte, what string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", what, err)
	}
	return obj, nil
}

// member decodes one value of obj. Missing or malformed members are nil.
func member(obj map[string]json.RawMessage, key string) interface{} {
	data, ok := obj[key]
	if !ok {
		return nil
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func scoreField(obj map[string]json.RawMessage, key string) Score {
	return Score(toNumber(member(obj, key)))
}

func intField(obj map[string]json.RawMessage, key string) int {
	v := math.Trunc(toNumber(member(obj, key)))
	if v > maxExactInt || v < -maxExactInt {
		return 0
	}
	return int(v)
}

func textField(obj map[string]json.RawMessage, key string) string {
	switch v := member(obj, key).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
