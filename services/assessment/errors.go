package assessment

import (
	"errors"
	"fmt"
)

// ErrorKind groups rule errors for HTTP mapping.
type ErrorKind string

const (
	KindStructural    ErrorKind = "STRUCTURAL"
	KindStateConflict ErrorKind = "STATE_CONFLICT"
	KindEligibility   ErrorKind = "ELIGIBILITY"
)

// Rule error codes
const (
	CodeModulesWithoutAssessment    = "MODULES_WITHOUT_ASSESSMENT"
	CodeAssessmentsWithoutQuestions = "ASSESSMENTS_WITHOUT_QUESTIONS"
	CodeAssessmentOwnerConflict     = "ASSESSMENT_OWNER_CONFLICT"
	CodeModuleAlreadyHasAssessment  = "MODULE_ALREADY_HAS_ASSESSMENT"
	CodeModuleHasAssessment         = "MODULE_HAS_ASSESSMENT"
	CodeAssessmentAlreadySubmitted  = "ASSESSMENT_ALREADY_SUBMITTED"
	CodeSubmissionAlreadyGraded     = "SUBMISSION_ALREADY_GRADED"
	CodeAnswerNotManuallyGradable   = "ANSWER_NOT_MANUALLY_GRADABLE"
	CodeScoreOutOfRange             = "SCORE_OUT_OF_RANGE"
	CodeAssessmentsNotCompleted     = "ASSESSMENTS_NOT_COMPLETED"
	CodeFinalGradeBelowPassingScore = "FINAL_GRADE_BELOW_PASSING_SCORE"
)

// Error is a business-rule rejection. It carries enough payload for the
// caller to present an actionable message; it never warrants a retry.
type Error struct {
	Kind    ErrorKind              `json:"kind"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(kind ErrorKind, code, message string, details map[string]interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Details: details}
}

// AsRuleError unwraps err into a rule error, if it is one.
func AsRuleError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err is a rule error with the given code.
func HasCode(err error, code string) bool {
	if e, ok := AsRuleError(err); ok {
		return e.Code == code
	}
	return false
}
