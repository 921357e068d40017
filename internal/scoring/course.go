package scoring

// CourseGrade is the final course grade built from one midterm and one finals
// result for the same student and subject.
type CourseGrade struct {
	StudentID                 int     `json:"studentId,omitempty"`
	SubjectID                 int     `json:"subjectId,omitempty"`
	StudentName               string  `json:"studentName,omitempty"`
	SubjectCode               string  `json:"subjectCode,omitempty"`
	ComputedTotalMidtermGrade float64 `json:"computedTotalMidtermGrade"`
	RoundedTotalMidtermGrade  float64 `json:"roundedTotalMidtermGrade"`
	ComputedTotalFinalGrade   float64 `json:"computedTotalFinalGrade"`
	RoundedTotalFinalGrade    float64 `json:"roundedTotalFinalGrade"`
	ComputedFinalCourseGrade  float64 `json:"computedFinalCourseGrade"`
	RoundedFinalCourseGrade   float64 `json:"roundedFinalCourseGrade"`
	GradePointEquivalent      float64 `json:"gradePointEquivalent"`
}

// CalculateCourseGrade averages the midterm and finals composites. It returns
// false when either term is uncomputed or the scale is empty.
func CalculateCourseGrade(midterm MidtermGrade, finals FinalsGrade, scale GradeScale) (CourseGrade, bool) {
	if !midterm.Computed() || !finals.Computed() || len(scale) == 0 {
		return CourseGrade{}, false
	}
	course := round2((midterm.TotalMidtermGrade + finals.TotalFinalsGrade) / 2)
	rounded := roundHalfUp(course)

	identity := midterm.GradeRecord
	if identity.StudentID == 0 && identity.StudentFullName == "" {
		identity = finals.GradeRecord
	}
	return CourseGrade{
		StudentID:                 identity.StudentID,
		SubjectID:                 identity.SubjectID,
		StudentName:               identity.StudentFullName,
		SubjectCode:               identity.SubjectCode,
		ComputedTotalMidtermGrade: midterm.TotalMidtermGrade,
		RoundedTotalMidtermGrade:  midterm.TotalMidtermGradeRounded,
		ComputedTotalFinalGrade:   finals.TotalFinalsGrade,
		RoundedTotalFinalGrade:    finals.TotalFinalsGradeRounded,
		ComputedFinalCourseGrade:  course,
		RoundedFinalCourseGrade:   rounded,
		GradePointEquivalent:      scale.GradePoint(rounded),
	}, true
}
