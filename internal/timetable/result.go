package timetable

// Conflict describes one existing assignment that collides with a proposed
// teacher/time pair. All the conflict logic lives server-side; these are
// read-only snapshots for display.
type Conflict struct {
	TeacherName string `json:"teacher_name"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ClassName   string `json:"class_name"`
	SectionName string `json:"section_name"`
	SubjectName string `json:"subject_name"`
}

// ConflictResult is the outcome of a single-slot conflict check. Transient:
// produced per check, discarded once the dialog closes.
type ConflictResult struct {
	HasConflict bool       `json:"has_conflict"`
	Conflicts   []Conflict `json:"conflicts"`
	Count       int        `json:"conflict_count"`
}

// ValidationResult is the verdict of a whole-grid validation. The most
// recent result gates the final save until entries change again.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"validation_message"`
}

// CheckOutcome classifies a conflict check. A transport or server failure
// is Inconclusive, never silently "clear": the caller decides whether to
// block, warn, or proceed.
type CheckOutcome int

const (
	OutcomeClear CheckOutcome = iota
	OutcomeConflict
	OutcomeInconclusive
)

// String returns a short label for logging and banners.
func (o CheckOutcome) String() string {
	switch o {
	case OutcomeClear:
		return "clear"
	case OutcomeConflict:
		return "conflict"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}
