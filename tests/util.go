package testutil

import (
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/student"
	"github.com/trezcool/kazi/storage/jsondb"
	"github.com/trezcool/kazi/storage/uploadfs"
)

// OpenDB opens a record store rooted in a per-test temp dir.
func OpenDB(t *testing.T) *jsondb.DB {
	t.Helper()
	db, err := jsondb.Open(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// OpenTree opens an upload tree rooted in a per-test temp dir.
func OpenTree(t *testing.T) *uploadfs.Tree {
	t.Helper()
	tree, err := uploadfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("OpenTree() failed: %v", err)
	}
	return tree
}

func CreateStudent(t *testing.T, repo student.Repository, studentID, name string) student.Student {
	t.Helper()
	std, err := repo.CreateStudent(student.Student{StudentID: studentID, Name: name})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateAssignment(t *testing.T, repo assignment.Repository, course, title, deadline string, formats ...string) assignment.Assignment {
	t.Helper()
	if len(formats) == 0 {
		formats = assignment.DefaultFileNameFormats
	}
	asg, err := repo.CreateAssignment(assignment.Assignment{
		CourseName:      course,
		Title:           title,
		Description:     title + " requirements",
		Deadline:        deadline,
		FileNameFormats: formats,
		Status:          assignment.StatusActive,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return asg
}

func CreateLeaveRequest(t *testing.T, repo leave.Repository, studentID, name, submitTime, status string) leave.Request {
	t.Helper()
	req, err := repo.CreateLeaveRequest(leave.Request{
		StudentName: name,
		StudentID:   studentID,
		LeaveType:   "sick",
		Reason:      "flu",
		SubmitTime:  submitTime,
		Status:      status,
	})
	if err != nil {
		t.Fatalf("CreateLeaveRequest() failed: %v", err)
	}
	return req
}

// JSONEq fails the test with a unified diff when got and want do not
// marshal to the same JSON.
func JSONEq(t *testing.T, got, want interface{}) {
	t.Helper()
	gotJSON, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("JSONEq() failed: %v", err)
	}
	wantJSON, err := json.MarshalIndent(want, "", "  ")
	if err != nil {
		t.Fatalf("JSONEq() failed: %v", err)
	}
	if string(gotJSON) == string(wantJSON) {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(wantJSON)),
		B:        difflib.SplitLines(string(gotJSON)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("unexpected result:\n%s", diff)
}
