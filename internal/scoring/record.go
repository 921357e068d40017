package scoring

import (
	"encoding/json"
	"strings"
)

// Term selects the exam component of a grading period.
type Term string

const (
	// TermMidterm combines the prelim and midterm exams.
	TermMidterm Term = "midterm"
	// TermFinals uses the single finals exam.
	TermFinals Term = "finals"
)

// Valid reports whether the term is known.
func (t Term) Valid() bool {
	return t == TermMidterm || t == TermFinals
}

// SEPDepartment is the only department whose students are graded on SEP.
const SEPDepartment = "BSED"

// QuizItem is a single quiz entry.
type QuizItem struct {
	ID             int    `json:"id,omitempty"`
	Label          string `json:"label"`
	QuizScore      Score  `json:"quizScore"`
	TotalQuizScore Score  `json:"totalQuizScore"`

	raw map[string]json.RawMessage
}

// ClassStandingItem is a single scored class-standing activity.
type ClassStandingItem struct {
	ID    int    `json:"id,omitempty"`
	Label string `json:"label"`
	Score Score  `json:"score"`
	Total Score  `json:"total"`

	raw map[string]json.RawMessage
}

// GradeRecord is the per student, per subject, per term grade input.
type GradeRecord struct {
	ID               int    `json:"id,omitempty"`
	StudentID        int    `json:"studentId,omitempty"`
	SubjectID        int    `json:"subjectId,omitempty"`
	AcademicPeriodID int    `json:"academicPeriodId,omitempty"`
	StudentNumber    string `json:"studentNumber,omitempty"`
	StudentFullName  string `json:"studentFullName,omitempty"`
	Department       string `json:"department,omitempty"`
	SubjectCode      string `json:"subjectCode,omitempty"`
	SubjectName      string `json:"subjectName,omitempty"`
	SubjectTeacher   string `json:"subjectTeacher,omitempty"`
	Semester         string `json:"semester,omitempty"`
	AcademicYear     string `json:"academicYear,omitempty"`

	Quizzes            []QuizItem          `json:"quizzes"`
	ClassStandingItems []ClassStandingItem `json:"classStandingItems"`
	RecitationScore    Score               `json:"recitationScore"`
	AttendanceScore    Score               `json:"attendanceScore"`
	SEPScore           Score               `json:"sepScore"`
	ProjectScore       Score               `json:"projectScore"`

	PrelimScore  Score `json:"prelimScore,omitempty"`
	PrelimTotal  Score `json:"prelimTotal,omitempty"`
	MidtermScore Score `json:"midtermScore,omitempty"`
	MidtermTotal Score `json:"midtermTotal,omitempty"`
	FinalsScore  Score `json:"finalsScore,omitempty"`
	FinalsTotal  Score `json:"finalsTotal,omitempty"`

	// raw is the object the record was decoded from. normalized marks a copy
	// whose scored fields were rewritten by the engine.
	raw        map[string]json.RawMessage
	normalized bool
}

// SEPApplicable reports whether SEP counts toward this student's grade.
func (r GradeRecord) SEPApplicable() bool {
	return strings.EqualFold(strings.TrimSpace(r.Department), SEPDepartment)
}

// sanitized returns a copy with every numeric input made finite and SEP gated
// by department. Item slices are copied so callers keep their own data.
func (r GradeRecord) sanitized() GradeRecord {
	out := r
	out.normalized = true
	if r.Quizzes != nil {
		out.Quizzes = make([]QuizItem, len(r.Quizzes))
		for i, q := range r.Quizzes {
			q.QuizScore = Score(q.QuizScore.Float())
			q.TotalQuizScore = Score(q.TotalQuizScore.Float())
			out.Quizzes[i] = q
		}
	}
	if r.ClassStandingItems != nil {
		out.ClassStandingItems = make([]ClassStandingItem, len(r.ClassStandingItems))
		for i, cs := range r.ClassStandingItems {
			cs.Score = Score(cs.Score.Float())
			cs.Total = Score(cs.Total.Float())
			out.ClassStandingItems[i] = cs
		}
	}
	out.RecitationScore = Score(r.RecitationScore.Float())
	out.AttendanceScore = Score(r.AttendanceScore.Float())
	out.ProjectScore = Score(r.ProjectScore.Float())
	out.PrelimScore = Score(r.PrelimScore.Float())
	out.PrelimTotal = Score(r.PrelimTotal.Float())
	out.MidtermScore = Score(r.MidtermScore.Float())
	out.MidtermTotal = Score(r.MidtermTotal.Float())
	out.FinalsScore = Score(r.FinalsScore.Float())
	out.FinalsTotal = Score(r.FinalsTotal.Float())
	if r.SEPApplicable() {
		out.SEPScore = Score(r.SEPScore.Float())
	} else {
		out.SEPScore = 0
	}
	return out
}
