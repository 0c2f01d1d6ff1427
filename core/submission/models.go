package submission

import (
	"github.com/trezcool/kazi/core"
)

// StatusSubmitted is the only terminal state a Record carries; the slot
// itself goes back to empty when an administrator clears the directory.
const StatusSubmitted = "submitted"

// Record is a single accepted submission. Records live in an append-only
// per-student-per-assignment log; the JSON keys are part of the persisted
// document layout and must not change.
type Record struct {
	ID           int      `json:"id"`
	StudentName  string   `json:"student_name"`
	StudentID    string   `json:"student_id"`
	AssignmentID string   `json:"homework_id"`
	Description  string   `json:"description"`
	Filenames    []string `json:"filenames"`
	SubmitTime   string   `json:"submit_time"`
	Status       string   `json:"status"`
}

// View decorates a Record with its assignment's title and course for the
// cross-cutting submission listings.
type View struct {
	Record
	HomeworkTitle string `json:"homeworkTitle"`
	CourseName    string `json:"courseName"`
}

// HistoryView is the per-student history projection; it repeats the submit
// time and file list under the aliases the query surface exposes.
type HistoryView struct {
	View
	SubmitTime string   `json:"submitTime"`
	Files      []string `json:"files"`
}

// MissingView pairs a not-yet-submitted student with an assignment.
type MissingView struct {
	CourseName  string `json:"course_name"`
	Title       string `json:"title"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Deadline    string `json:"deadline"`
}

// StudentDir is one per-student directory beneath an assignment directory.
// Its name encodes the natural key as "studentId_studentName".
type StudentDir struct {
	Name        string
	StudentID   string
	StudentName string
}

// SubmitRequest is an incoming submission attempt.
type SubmitRequest struct {
	StudentID    string
	StudentName  string
	AssignmentID string
	Description  string
	Files        []core.File
}

// SubmitResult reports an accepted submission.
type SubmitResult struct {
	SavedFiles []string
}

// QueryFilter restricts the submission listing. StudentName matches
// case-insensitively; the other fields match exactly.
type QueryFilter struct {
	Course      string `query:"course"`
	StudentID   string `query:"studentId"`
	StudentName string `query:"studentName"`
}

func (qf *QueryFilter) Clean() {
	qf.Course = core.CleanString(qf.Course)
	qf.StudentID = core.CleanString(qf.StudentID)
	qf.StudentName = core.CleanString(qf.StudentName)
}

// ErrorKind is the stable machine-checkable outcome of a rejected
// submission; the order of pipeline checks fixes which kind wins.
type ErrorKind string

const (
	KindMissingFields      ErrorKind = "missing_fields"
	KindUnknownStudent     ErrorKind = "unknown_student"
	KindAssignmentNotFound ErrorKind = "assignment_not_found"
	KindBadDeadlineFormat  ErrorKind = "bad_deadline_format"
	KindDeadlineExpired    ErrorKind = "deadline_expired"
	KindAlreadySubmitted   ErrorKind = "already_submitted"
	KindInvalidFilename    ErrorKind = "invalid_filename"
	KindNoFilesUploaded    ErrorKind = "no_files_uploaded"
)

// Error is a rejected submission attempt.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// AsError extracts a rejection from any error returned by Submit.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
