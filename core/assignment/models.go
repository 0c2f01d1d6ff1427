package assignment

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/kazi/core"
)

const StatusActive = "active"

// DeadlineFormat is the legacy wall-clock deadline layout. ISO-8601
// deadlines (with or without a trailing UTC marker) and bare dates
// are also accepted.
const DeadlineFormat = "2006-01-02 15:04"

var (
	ErrBadDeadline = errors.New("assignment deadline format is invalid")

	deadlineLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		DeadlineFormat,
		"2006-01-02", // date only, midnight local
	}
)

// Assignment is an instructor-published task. It owns the directory
// homework_{ID} in the upload tree; deleting it releases that subtree.
type Assignment struct {
	ID              int      `json:"id"`
	CourseName      string   `json:"course_name"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Deadline        string   `json:"deadline"`
	FileNameFormats []string `json:"fileNameFormats"`
	Status          string   `json:"status"`
}

// ParseDeadline parses d, trying each supported layout in order.
func ParseDeadline(d string) (time.Time, error) {
	t, err := core.ParseTimestamp(d, deadlineLayouts...)
	if err != nil {
		return time.Time{}, ErrBadDeadline
	}
	return t, nil
}

// IsExpired reports whether the assignment's deadline lies before now.
// The error is ErrBadDeadline when the deadline parses in no supported layout.
func (a Assignment) IsExpired(now time.Time) (bool, error) {
	deadline, err := ParseDeadline(a.Deadline)
	if err != nil {
		return false, err
	}
	return now.After(deadline), nil
}

// Filename template placeholders.
const (
	PlaceholderStudentID    = "{studentId}"
	PlaceholderStudentName  = "{studentName}"
	PlaceholderAssignmentID = "{assignmentId}"
)

var DefaultFileNameFormats = []string{"{studentId}_{studentName}_lab{assignmentId}.docx"}

var placeholderRegex = regexp.MustCompile(`\{[^{}]+\}`)

// RenderFileName substitutes the fixed placeholder set into format.
// A format carrying an unknown placeholder is unusable: ok is false.
func RenderFileName(format, studentID, studentName string, assignmentID int) (name string, ok bool) {
	r := strings.NewReplacer(
		PlaceholderStudentID, studentID,
		PlaceholderStudentName, studentName,
		PlaceholderAssignmentID, strconv.Itoa(assignmentID),
	)
	name = r.Replace(format)
	if placeholderRegex.MatchString(name) {
		return "", false
	}
	return name, true
}

// RenderExamples renders every usable format for the given student and
// assignment, preserving order.
func RenderExamples(formats []string, studentID, studentName string, assignmentID int) []string {
	examples := make([]string, 0, len(formats))
	for _, f := range formats {
		if name, ok := RenderFileName(f, studentID, studentName, assignmentID); ok {
			examples = append(examples, name)
		}
	}
	return examples
}

// MatchesFileName reports whether filename exact-matches the rendering of
// any of the assignment's formats for the given student.
func (a Assignment) MatchesFileName(filename, studentID, studentName string) bool {
	for _, f := range a.FileNameFormats {
		if name, ok := RenderFileName(f, studentID, studentName, a.ID); ok && name == filename {
			return true
		}
	}
	return false
}

// NewAssignment contains information needed to publish a new Assignment.
type NewAssignment struct {
	CourseName      string   `json:"courseName" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Deadline        string   `json:"deadline" validate:"required"`
	Requirements    string   `json:"requirements" validate:"required"`
	FileNameFormats []string `json:"fileNameFormats"`
}

func (na *NewAssignment) Validate() error {
	na.CourseName = core.CleanString(na.CourseName)
	na.Title = core.CleanString(na.Title)
	na.Deadline = core.CleanString(na.Deadline)
	return core.Validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify a
// published Assignment.
type UpdateAssignment struct {
	CourseName      string   `json:"courseName" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Deadline        string   `json:"deadline" validate:"required"`
	Requirements    string   `json:"requirements" validate:"required"`
	FileNameFormats []string `json:"fileNameFormats"`
}

func (ua *UpdateAssignment) Validate() error {
	ua.CourseName = core.CleanString(ua.CourseName)
	ua.Title = core.CleanString(ua.Title)
	ua.Deadline = core.CleanString(ua.Deadline)
	return core.Validate.Struct(ua)
}
