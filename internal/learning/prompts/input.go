package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Module structure
	CourseTitle       string
	CourseDescription string
	NumberOfModules   int

	// Lesson
	Topic             string
	DesiredOutcomes   string
	AdditionalContext string

	// Common
	TargetAudience string
	LearningLevel  string
}

// field returns the string value of a named Input field for required checks.
func (in Input) field(name string) (string, bool) {
	switch name {
	case "CourseTitle":
		return in.CourseTitle, true
	case "CourseDescription":
		return in.CourseDescription, true
	case "Topic":
		return in.Topic, true
	case "DesiredOutcomes":
		return in.DesiredOutcomes, true
	case "AdditionalContext":
		return in.AdditionalContext, true
	case "TargetAudience":
		return in.TargetAudience, true
	case "LearningLevel":
		return in.LearningLevel, true
	default:
		return "", false
	}
}
