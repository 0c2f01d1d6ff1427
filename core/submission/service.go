package submission

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/student"
)

var (
	// errors
	ErrStudentMismatch = core.NewNotFoundError("student not found or name does not match student ID")

	nowFunc = time.Now // mockable

	// rejection messages; part of the stable user-facing surface
	msgMissingFields      = "missing required information"
	msgUnknownStudent     = "student not found or name does not match student ID"
	msgAssignmentNotFound = "assignment not found"
	msgBadDeadline        = "assignment deadline format is invalid"
	msgDeadlineExpired    = "the assignment deadline has passed"
	msgAlreadySubmitted   = "you have already submitted this assignment; contact the class rep to resubmit"
	msgInvalidFilename    = "invalid file name; use one of the following formats:\n"
	msgInvalidFilenameAny = "invalid file name; check the naming formats in the assignment requirements"
	msgNoFilesUploaded    = "no files were uploaded"
)

type (
	// Tree is the on-disk submission tree: one directory per assignment,
	// one directory per student beneath it, one append-only log per
	// student directory. The admission engine holds exclusive append
	// rights; queries only read.
	Tree interface {
		EnsureStudentDir(assignmentID, studentID, studentName string) error
		// HasSubmission reports whether a non-empty submission log exists
		// for the (assignment, student) slot.
		HasSubmission(assignmentID, studentID, studentName string) (bool, error)
		SaveFile(assignmentID, studentID, studentName, filename string, content io.Reader) error
		ReadLog(assignmentID, studentID, studentName string) ([]Record, error)
		AppendRecord(assignmentID, studentID, studentName string, rec Record) error
		// CountEntries counts directory entries in the student directory
		// (the legacy local record ID derivation).
		CountEntries(assignmentID, studentID, studentName string) (int, error)
		StudentDirs(assignmentID string) ([]StudentDir, error)
		// ClearStudentDir removes the student directory outright,
		// returning the slot to empty. Reports whether anything existed.
		ClearStudentDir(assignmentID, studentID, studentName string) (bool, error)
	}

	Service struct {
		students    student.Repository
		assignments assignment.Repository
		tree        Tree

		// legacyRecordIDs derives local record IDs from the directory
		// entry count, as existing trees number them; when false, IDs
		// come from the log length instead.
		legacyRecordIDs bool
	}
)

func NewService(students student.Repository, assignments assignment.Repository, tree Tree) *Service {
	return &Service{
		students:        students,
		assignments:     assignments,
		tree:            tree,
		legacyRecordIDs: true,
	}
}

// UseCounterRecordIDs switches local record ID allocation from the fragile
// directory-entry count to a log-length counter.
func (svc *Service) UseCounterRecordIDs() {
	svc.legacyRecordIDs = false
}

// Submit runs the admission pipeline. Checks short-circuit in a fixed
// order; any rejection is an *Error carrying its ErrorKind.
func (svc *Service) Submit(req SubmitRequest) (SubmitResult, error) {
	req.StudentID = core.CleanString(req.StudentID)
	req.StudentName = core.CleanString(req.StudentName)
	req.AssignmentID = core.CleanString(req.AssignmentID)

	// 1. required fields
	if req.StudentID == "" || req.StudentName == "" || req.AssignmentID == "" {
		return SubmitResult{}, newError(KindMissingFields, msgMissingFields)
	}

	// 2. identity: exact (studentId, name) match
	if _, err := svc.students.GetStudentByNaturalKey(req.StudentID, req.StudentName); err != nil {
		if err == student.ErrNotFound {
			return SubmitResult{}, newError(KindUnknownStudent, msgUnknownStudent)
		}
		return SubmitResult{}, err
	}

	// 3. assignment existence
	asg, err := svc.findAssignment(req.AssignmentID)
	if err != nil {
		if err == assignment.ErrNotFound {
			return SubmitResult{}, newError(KindAssignmentNotFound, msgAssignmentNotFound)
		}
		return SubmitResult{}, err
	}

	// 4. deadline
	expired, err := asg.IsExpired(nowFunc())
	if err != nil {
		return SubmitResult{}, newError(KindBadDeadlineFormat, msgBadDeadline)
	}
	if expired {
		return SubmitResult{}, newError(KindDeadlineExpired, msgDeadlineExpired)
	}

	// 5. one submission per slot
	submitted, err := svc.tree.HasSubmission(req.AssignmentID, req.StudentID, req.StudentName)
	if err != nil {
		return SubmitResult{}, err
	}
	if submitted {
		return SubmitResult{}, newError(KindAlreadySubmitted, msgAlreadySubmitted)
	}

	// 6. every file name must render from one of the assignment's formats
	for _, f := range req.Files {
		if !asg.MatchesFileName(f.Name, req.StudentID, req.StudentName) {
			examples := assignment.RenderExamples(asg.FileNameFormats, req.StudentID, req.StudentName, asg.ID)
			if len(examples) == 0 {
				return SubmitResult{}, newError(KindInvalidFilename, msgInvalidFilenameAny)
			}
			return SubmitResult{}, newError(KindInvalidFilename, msgInvalidFilename+strings.Join(examples, "\n"))
		}
	}

	// 7. at least one file
	if len(req.Files) == 0 {
		return SubmitResult{}, newError(KindNoFilesUploaded, msgNoFilesUploaded)
	}

	// accepted: materialize files, then append the record. A crash between
	// the two leaves orphaned files with no recorded submission; that loss
	// mode comes with the log-beside-files layout.
	if err = svc.tree.EnsureStudentDir(req.AssignmentID, req.StudentID, req.StudentName); err != nil {
		return SubmitResult{}, err
	}
	saved := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		if err = svc.tree.SaveFile(req.AssignmentID, req.StudentID, req.StudentName, f.Name, f.Content); err != nil {
			return SubmitResult{}, err
		}
		saved = append(saved, f.Name)
	}

	id, err := svc.nextRecordID(req)
	if err != nil {
		return SubmitResult{}, err
	}
	rec := Record{
		ID:           id,
		StudentName:  req.StudentName,
		StudentID:    req.StudentID,
		AssignmentID: req.AssignmentID,
		Description:  req.Description,
		Filenames:    saved,
		SubmitTime:   nowFunc().Format(core.TimestampFormat),
		Status:       StatusSubmitted,
	}
	if err = svc.tree.AppendRecord(req.AssignmentID, req.StudentID, req.StudentName, rec); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{SavedFiles: saved}, nil
}

func (svc *Service) nextRecordID(req SubmitRequest) (int, error) {
	if svc.legacyRecordIDs {
		return svc.tree.CountEntries(req.AssignmentID, req.StudentID, req.StudentName)
	}
	log, err := svc.tree.ReadLog(req.AssignmentID, req.StudentID, req.StudentName)
	if err != nil {
		return 0, err
	}
	return len(log) + 1, nil
}

func (svc *Service) findAssignment(assignmentID string) (assignment.Assignment, error) {
	asgs, err := svc.assignments.QueryAllAssignments()
	if err != nil {
		return assignment.Assignment{}, err
	}
	for _, a := range asgs {
		if strconv.Itoa(a.ID) == assignmentID {
			return a, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

// List scans the submission tree and decorates every record found with its
// assignment's title and course, then applies the filter.
func (svc *Service) List(filter QueryFilter) ([]View, error) {
	filter.Clean()

	var asgs []assignment.Assignment
	var err error
	if filter.Course != "" {
		asgs, err = svc.assignments.FilterAssignmentsByCourse(filter.Course)
	} else {
		asgs, err = svc.assignments.QueryAllAssignments()
	}
	if err != nil {
		return nil, err
	}

	views := make([]View, 0)
	for _, asg := range asgs {
		aid := strconv.Itoa(asg.ID)
		dirs, err := svc.tree.StudentDirs(aid)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			log, err := svc.tree.ReadLog(aid, dir.StudentID, dir.StudentName)
			if err != nil {
				return nil, err
			}
			for _, rec := range log {
				views = append(views, View{Record: rec, HomeworkTitle: asg.Title, CourseName: asg.CourseName})
			}
		}
	}

	if filter.StudentID == "" && filter.StudentName == "" {
		return views, nil
	}
	filtered := make([]View, 0, len(views))
	for _, v := range views {
		matchID := filter.StudentID == "" || v.StudentID == filter.StudentID
		matchName := filter.StudentName == "" || strings.EqualFold(v.StudentName, filter.StudentName)
		if matchID && matchName {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// Missing reports, per assignment of the course, every enrolled student
// with no submission directory. Without a course there are no relevant
// assignments and the report is empty.
func (svc *Service) Missing(course string) ([]MissingView, error) {
	course = core.CleanString(course)
	if course == "" {
		return []MissingView{}, nil
	}
	asgs, err := svc.assignments.FilterAssignmentsByCourse(course)
	if err != nil {
		return nil, err
	}
	students, err := svc.students.QueryAllStudents()
	if err != nil {
		return nil, err
	}

	missing := make([]MissingView, 0)
	for _, asg := range asgs {
		dirs, err := svc.tree.StudentDirs(strconv.Itoa(asg.ID))
		if err != nil {
			return nil, err
		}
		submitted := make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			submitted[dir.StudentID] = true
		}
		for _, std := range students {
			if !submitted[std.StudentID] {
				missing = append(missing, MissingView{
					CourseName:  asg.CourseName,
					Title:       asg.Title,
					StudentID:   std.StudentID,
					StudentName: std.Name,
					Deadline:    asg.Deadline,
				})
			}
		}
	}
	return missing, nil
}

// StudentHistory flattens the student's submission logs across all
// assignments, sorted ascending by submit time. The timestamp format sorts
// lexicographically, so a stable string sort suffices.
func (svc *Service) StudentHistory(studentID string) ([]HistoryView, error) {
	studentID = core.CleanString(studentID)

	asgs, err := svc.assignments.QueryAllAssignments()
	if err != nil {
		return nil, err
	}

	history := make([]HistoryView, 0)
	for _, asg := range asgs {
		aid := strconv.Itoa(asg.ID)
		dirs, err := svc.tree.StudentDirs(aid)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			if dir.StudentID != studentID {
				continue
			}
			log, err := svc.tree.ReadLog(aid, dir.StudentID, dir.StudentName)
			if err != nil {
				return nil, err
			}
			for _, rec := range log {
				history = append(history, HistoryView{
					View:       View{Record: rec, HomeworkTitle: asg.Title, CourseName: asg.CourseName},
					SubmitTime: rec.SubmitTime,
					Files:      rec.Filenames,
				})
			}
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].SubmitTime < history[j].SubmitTime
	})
	return history, nil
}

// Clear deletes the student's directory for the assignment after verifying
// the claimed natural key, returning the slot to empty.
func (svc *Service) Clear(assignmentID, studentID, studentName string) (bool, error) {
	studentID = core.CleanString(studentID)
	studentName = core.CleanString(studentName)

	if _, err := svc.students.GetStudentByNaturalKey(studentID, studentName); err != nil {
		if err == student.ErrNotFound {
			return false, ErrStudentMismatch
		}
		return false, err
	}
	return svc.tree.ClearStudentDir(assignmentID, studentID, studentName)
}
