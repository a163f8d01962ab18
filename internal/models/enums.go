package models

// ProjectStatus enumerates the known project lifecycle stages. Stored values
// outside this set are reported through StatusUnknown for display and
// aggregation purposes.
type ProjectStatus string

const (
	StatusDiscussion  ProjectStatus = "discussion"
	StatusDevelopment ProjectStatus = "development"
	StatusCompleted   ProjectStatus = "completed"
	StatusUnknown     ProjectStatus = "unknown"
)

// ParseProjectStatus maps a stored status string onto the closed enumeration.
func ParseProjectStatus(raw string) ProjectStatus {
	switch ProjectStatus(raw) {
	case StatusDiscussion, StatusDevelopment, StatusCompleted:
		return ProjectStatus(raw)
	}
	return StatusUnknown
}

// LectureCategory is the fixed vocabulary used to group lectures in menus.
type LectureCategory string

const (
	CategoryProgramming LectureCategory = "Programming"
	CategorySecurity    LectureCategory = "Security"
	CategoryDataScience LectureCategory = "DataScience"
	CategoryWeb         LectureCategory = "Web"
	CategoryMobile      LectureCategory = "Mobile"

	// CategoryAll is the pseudo-category selecting every lecture.
	CategoryAll LectureCategory = "all"

	// CategoryUncategorized is the fallback bucket for lectures whose stored
	// category matches no vocabulary entry.
	CategoryUncategorized LectureCategory = "Uncategorized"
)

// LectureCategories lists the selectable vocabulary entries in menu order.
var LectureCategories = []LectureCategory{
	CategoryProgramming,
	CategorySecurity,
	CategoryDataScience,
	CategoryWeb,
	CategoryMobile,
}

// ParseLectureCategory normalizes a stored category against the vocabulary.
func ParseLectureCategory(raw string) LectureCategory {
	for _, c := range LectureCategories {
		if string(c) == raw {
			return c
		}
	}
	return CategoryUncategorized
}
