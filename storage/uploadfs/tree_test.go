package uploadfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trezcool/kazi/core/submission"
)

func newTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return tree
}

func record(id int, filenames ...string) submission.Record {
	return submission.Record{
		ID:           id,
		StudentName:  "Alice",
		StudentID:    "S1",
		AssignmentID: "1",
		Filenames:    filenames,
		SubmitTime:   "2021-06-15 12:00:00",
		Status:       submission.StatusSubmitted,
	}
}

func Test_Tree_pathContainment(t *testing.T) {
	tree := newTree(t)

	up := strings.Repeat("../", 20)
	tests := []struct {
		name                                 string
		assignmentID, studentID, studentName string
	}{
		{name: "assignment ID escapes", assignmentID: up + "etc", studentID: "S1", studentName: "Alice"},
		{name: "student name escapes", assignmentID: "1", studentID: "S1", studentName: up + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tree.EnsureStudentDir(tt.assignmentID, tt.studentID, tt.studentName); err == nil {
				t.Error("EnsureStudentDir() accepted a path outside the root")
			}
			if _, err := tree.ReadLog(tt.assignmentID, tt.studentID, tt.studentName); err == nil {
				t.Error("ReadLog() accepted a path outside the root")
			}
		})
	}
}

func Test_Tree_SaveFile_rejectsUnsafeNames(t *testing.T) {
	tree := newTree(t)
	if err := tree.EnsureStudentDir("1", "S1", "Alice"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}

	for _, name := range []string{"../sneaky.txt", "a/b.txt", ".", ".."} {
		if err := tree.SaveFile("1", "S1", "Alice", name, strings.NewReader("x")); err == nil {
			t.Errorf("SaveFile(%q) accepted an unsafe name", name)
		}
	}

	if err := tree.SaveFile("1", "S1", "Alice", "ok.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(tree.Root(), "homework_1", "S1_Alice", "ok.txt"))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(raw) != "hello" {
		t.Errorf("file content = %q, want %q", raw, "hello")
	}
}

func Test_Tree_log(t *testing.T) {
	tree := newTree(t)

	// empty slot
	log, err := tree.ReadLog("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("ReadLog() failed: %v", err)
	}
	if log != nil {
		t.Errorf("ReadLog() on empty slot = %+v, want nil", log)
	}
	has, err := tree.HasSubmission("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("HasSubmission() failed: %v", err)
	}
	if has {
		t.Error("HasSubmission() = true on empty slot")
	}

	if err = tree.EnsureStudentDir("1", "S1", "Alice"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}
	if err = tree.AppendRecord("1", "S1", "Alice", record(1, "S1_Alice.txt")); err != nil {
		t.Fatalf("AppendRecord() failed: %v", err)
	}
	if err = tree.AppendRecord("1", "S1", "Alice", record(2, "S1_Alice_v2.txt")); err != nil {
		t.Fatalf("AppendRecord() failed: %v", err)
	}

	log, err = tree.ReadLog("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("ReadLog() failed: %v", err)
	}
	if len(log) != 2 || log[0].ID != 1 || log[1].ID != 2 {
		t.Errorf("log = %+v, want records 1 then 2", log)
	}
	has, err = tree.HasSubmission("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("HasSubmission() failed: %v", err)
	}
	if !has {
		t.Error("HasSubmission() = false after append")
	}
}

func Test_Tree_CountEntries(t *testing.T) {
	tree := newTree(t)
	if err := tree.EnsureStudentDir("1", "S1", "Alice"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}

	n, err := tree.CountEntries("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("CountEntries() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("CountEntries() = %d, want 0", n)
	}

	if err = tree.SaveFile("1", "S1", "Alice", "a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}
	if err = tree.AppendRecord("1", "S1", "Alice", record(1, "a.txt")); err != nil {
		t.Fatalf("AppendRecord() failed: %v", err)
	}

	// the log file itself counts as an entry
	n, err = tree.CountEntries("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("CountEntries() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountEntries() = %d, want 2", n)
	}
}

func Test_Tree_StudentDirs(t *testing.T) {
	tree := newTree(t)

	// absent assignment dir is an empty listing
	dirs, err := tree.StudentDirs("9")
	if err != nil {
		t.Fatalf("StudentDirs() failed: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("StudentDirs() = %+v, want empty", dirs)
	}

	if err = tree.EnsureStudentDir("1", "S1", "Alice"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}
	// names keep underscores past the first separator
	if err = tree.EnsureStudentDir("1", "S2", "Bob_Jr"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}
	// stray entries without a separator are ignored
	if err = os.MkdirAll(filepath.Join(tree.Root(), "homework_1", "junk"), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	dirs, err = tree.StudentDirs("1")
	if err != nil {
		t.Fatalf("StudentDirs() failed: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("StudentDirs() = %+v, want 2 dirs", dirs)
	}
	byID := make(map[string]submission.StudentDir, len(dirs))
	for _, d := range dirs {
		byID[d.StudentID] = d
	}
	if d := byID["S1"]; d.StudentName != "Alice" || d.Name != "S1_Alice" {
		t.Errorf("S1 dir = %+v", d)
	}
	if d := byID["S2"]; d.StudentName != "Bob_Jr" || d.Name != "S2_Bob_Jr" {
		t.Errorf("S2 dir = %+v", d)
	}
}

func Test_Tree_ClearStudentDir(t *testing.T) {
	tree := newTree(t)

	cleared, err := tree.ClearStudentDir("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("ClearStudentDir() failed: %v", err)
	}
	if cleared {
		t.Error("ClearStudentDir() = true on absent dir")
	}

	if err = tree.EnsureStudentDir("1", "S1", "Alice"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}
	if err = tree.SaveFile("1", "S1", "Alice", "a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}

	cleared, err = tree.ClearStudentDir("1", "S1", "Alice")
	if err != nil {
		t.Fatalf("ClearStudentDir() failed: %v", err)
	}
	if !cleared {
		t.Error("ClearStudentDir() = false, want true")
	}
	if _, err = os.Stat(filepath.Join(tree.Root(), "homework_1", "S1_Alice")); !os.IsNotExist(err) {
		t.Error("student dir still present after clear")
	}
}

func Test_Tree_SubmissionFilePath(t *testing.T) {
	tree := newTree(t)
	if err := tree.EnsureStudentDir("1", "S1", "Alice"); err != nil {
		t.Fatalf("EnsureStudentDir() failed: %v", err)
	}
	if err := tree.SaveFile("1", "S1", "Alice", "a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}

	path, err := tree.SubmissionFilePath("1", "S1", "Alice", "a.txt")
	if err != nil {
		t.Fatalf("SubmissionFilePath() failed: %v", err)
	}
	if filepath.Base(path) != "a.txt" {
		t.Errorf("SubmissionFilePath() = %s", path)
	}

	if _, err = tree.SubmissionFilePath("1", "S1", "Alice", "missing.txt"); err == nil {
		t.Error("SubmissionFilePath() found a missing file")
	}
	if _, err = tree.SubmissionFilePath("1", "S1", "Alice", "../"+logFileName); err == nil {
		t.Error("SubmissionFilePath() accepted an unsafe name")
	}
}

func Test_Tree_CopyAll(t *testing.T) {
	tree := newTree(t)

	save := func(sid, name, filename string) {
		t.Helper()
		if err := tree.EnsureStudentDir("1", sid, name); err != nil {
			t.Fatalf("EnsureStudentDir() failed: %v", err)
		}
		if err := tree.SaveFile("1", sid, name, filename, strings.NewReader("x")); err != nil {
			t.Fatalf("SaveFile() failed: %v", err)
		}
		rec := record(1, filename)
		rec.StudentID, rec.StudentName = sid, name
		if err := tree.AppendRecord("1", sid, name, rec); err != nil {
			t.Fatalf("AppendRecord() failed: %v", err)
		}
	}
	save("S1", "Alice", "S1_Alice.txt")
	save("S2", "Bob", "S2_Bob.txt")

	// a recorded file deleted from disk is skipped
	if err := tree.AppendRecord("1", "S1", "Alice", record(2, "gone.txt")); err != nil {
		t.Fatalf("AppendRecord() failed: %v", err)
	}

	dest := t.TempDir()
	copied, err := tree.CopyAll("1", dest)
	if err != nil {
		t.Fatalf("CopyAll() failed: %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("CopyAll() = %v, want 2 files", copied)
	}
	for _, name := range []string{"S1_Alice.txt", "S2_Bob.txt"} {
		if _, err = os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("copied file %s missing: %v", name, err)
		}
	}

	// nothing recorded means nothing copied
	copied, err = tree.CopyAll("9", t.TempDir())
	if err != nil {
		t.Fatalf("CopyAll() failed: %v", err)
	}
	if len(copied) != 0 {
		t.Errorf("CopyAll() on empty assignment = %v, want none", copied)
	}
}
