package scoring

// Grade is a letter rating of a roster's average per-player points.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeFor maps the per-player average of weighted points to a letter grade.
// An empty roster has average zero and grades F.
func GradeFor(avg float64) Grade {
	switch {
	case avg >= 50:
		return GradeS
	case avg >= 40:
		return GradeA
	case avg >= 30:
		return GradeB
	case avg >= 20:
		return GradeC
	case avg >= 10:
		return GradeD
	default:
		return GradeF
	}
}
