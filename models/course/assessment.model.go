package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment types
const (
	AssessmentMultipleChoice = "MULTIPLE_CHOICE"
	AssessmentEssay          = "ESSAY"
	AssessmentMixed          = "MIXED"
)

// Question types
const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionEssay          = "ESSAY"
)

// OwnerKind tags the variant of an assessment's owner.
type OwnerKind string

const (
	OwnedByCourse OwnerKind = "COURSE"
	OwnedByModule OwnerKind = "MODULE"
)

// AssessmentOwner is the tagged owner of an assessment: either a course
// (legacy direct association) or a module, never both.
type AssessmentOwner struct {
	Kind OwnerKind
	ID   uint
}

// Assessment represents a gradable quiz/test tied to a module or,
// legacy, directly to a course. Exactly one of CourseID/ModuleID is set.
type Assessment struct {
	gorm.Model
	CourseID  *uint  `json:"course_id" gorm:"index"`
	ModuleID  *uint  `json:"module_id" gorm:"index"`
	Title     string `json:"title"`
	Type      string `json:"type" gorm:"default:'MULTIPLE_CHOICE'"` // MULTIPLE_CHOICE, ESSAY, MIXED
	IsDeleted bool   `gorm:"default:false"`
}

// Owner returns the assessment's owner as a tagged variant. The second
// return is false when the row violates the exclusivity invariant.
func (a *Assessment) Owner() (AssessmentOwner, bool) {
	switch {
	case a.ModuleID != nil && a.CourseID == nil:
		return AssessmentOwner{Kind: OwnedByModule, ID: *a.ModuleID}, true
	case a.CourseID != nil && a.ModuleID == nil:
		return AssessmentOwner{Kind: OwnedByCourse, ID: *a.CourseID}, true
	default:
		return AssessmentOwner{}, false
	}
}

// SetOwner assigns the owner, clearing the other association.
func (a *Assessment) SetOwner(owner AssessmentOwner) {
	id := owner.ID
	if owner.Kind == OwnedByModule {
		a.ModuleID = &id
		a.CourseID = nil
		return
	}
	a.CourseID = &id
	a.ModuleID = nil
}

// Question represents a single question on an assessment. Options holds an
// ordered JSON array of option strings for multiple choice questions.
// Points are derived by reallocation and never set by hand.
type Question struct {
	gorm.Model
	AssessmentID  uint           `json:"assessment_id" gorm:"index;not null"`
	Text          string         `json:"text" gorm:"type:text"`
	Type          string         `json:"type" gorm:"default:'MULTIPLE_CHOICE'"` // MULTIPLE_CHOICE, ESSAY
	Options       datatypes.JSON `json:"options"`
	CorrectOption *int           `json:"correct_option"` // zero-based index, MULTIPLE_CHOICE only
	Points        float64        `json:"points" gorm:"default:0"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}
