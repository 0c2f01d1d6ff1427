// Package uploadfs is the on-disk submission tree:
//
//	{root}/homework_{assignmentID}/{studentId}_{studentName}/
//	    <submitted files>
//	    submissions.json    (append-only array of records)
//	{root}/leave_images/    (leave request attachments)
//
// The layout is shared with the record store's collections and must stay
// bit-compatible with them. Every destructive operation is scoped to a
// path proven to lie inside the root.
package uploadfs

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core/submission"
)

const (
	logFileName    = "submissions.json"
	leaveImagesDir = "leave_images"
)

var errPathEscapesRoot = errors.New("path escapes upload root")

var _ submission.Tree = (*Tree)(nil)

type Tree struct {
	root string

	// serializes log read-modify-append-write cycles
	mutex sync.Mutex
}

func New(root string) (*Tree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "resolving upload root")
	}
	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload root")
	}
	return &Tree{root: abs}, nil
}

func (t *Tree) Root() string { return t.root }

// contain verifies that the joined path stays inside the tree root.
func (t *Tree) contain(elems ...string) (string, error) {
	path := filepath.Join(append([]string{t.root}, elems...)...)
	if path != t.root && !strings.HasPrefix(path, t.root+string(os.PathSeparator)) {
		return "", errors.Wrapf(errPathEscapesRoot, "%q", filepath.Join(elems...))
	}
	return path, nil
}

func assignmentDirName(assignmentID string) string {
	return "homework_" + assignmentID
}

func studentDirName(studentID, studentName string) string {
	return studentID + "_" + studentName
}

// assignment.Dirs

func (t *Tree) EnsureAssignmentDir(assignmentID int) error {
	dir, err := t.contain(assignmentDirName(strconv.Itoa(assignmentID)))
	if err != nil {
		return err
	}
	return errors.Wrap(os.MkdirAll(dir, 0o755), "creating assignment dir")
}

func (t *Tree) RemoveAssignmentDir(assignmentID int) error {
	dir, err := t.contain(assignmentDirName(strconv.Itoa(assignmentID)))
	if err != nil {
		return err
	}
	return errors.Wrap(os.RemoveAll(dir), "removing assignment dir")
}

// submission.Tree

func (t *Tree) studentDir(assignmentID, studentID, studentName string) (string, error) {
	return t.contain(assignmentDirName(assignmentID), studentDirName(studentID, studentName))
}

func (t *Tree) EnsureStudentDir(assignmentID, studentID, studentName string) error {
	dir, err := t.studentDir(assignmentID, studentID, studentName)
	if err != nil {
		return err
	}
	return errors.Wrap(os.MkdirAll(dir, 0o755), "creating student dir")
}

func (t *Tree) HasSubmission(assignmentID, studentID, studentName string) (bool, error) {
	log, err := t.ReadLog(assignmentID, studentID, studentName)
	if err != nil {
		return false, err
	}
	return len(log) > 0, nil
}

func (t *Tree) SaveFile(assignmentID, studentID, studentName, filename string, content io.Reader) error {
	if filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return errors.Errorf("unsafe file name %q", filename)
	}
	dir, err := t.studentDir(assignmentID, studentID, studentName)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return errors.Wrap(err, "creating submitted file")
	}
	defer func() { _ = f.Close() }()
	if _, err = io.Copy(f, content); err != nil {
		return errors.Wrap(err, "writing submitted file")
	}
	return nil
}

func (t *Tree) logPath(assignmentID, studentID, studentName string) (string, error) {
	dir, err := t.studentDir(assignmentID, studentID, studentName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

func (t *Tree) ReadLog(assignmentID, studentID, studentName string) ([]submission.Record, error) {
	path, err := t.logPath(assignmentID, studentID, studentName)
	if err != nil {
		return nil, err
	}
	return readLogFile(path)
}

func readLogFile(path string) ([]submission.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading submission log")
	}
	var log []submission.Record
	if err = json.Unmarshal(raw, &log); err != nil {
		return nil, errors.Wrap(err, "parsing submission log")
	}
	return log, nil
}

// AppendRecord rewrites the whole log with rec appended; the tree mutex
// serializes the read-append-write cycle.
func (t *Tree) AppendRecord(assignmentID, studentID, studentName string, rec submission.Record) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	path, err := t.logPath(assignmentID, studentID, studentName)
	if err != nil {
		return err
	}
	log, err := readLogFile(path)
	if err != nil {
		return err
	}
	log = append(log, rec)

	raw, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding submission log")
	}
	return errors.Wrap(os.WriteFile(path, raw, 0o644), "writing submission log")
}

func (t *Tree) CountEntries(assignmentID, studentID, studentName string) (int, error) {
	dir, err := t.studentDir(assignmentID, studentID, studentName)
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(err, "listing student dir")
	}
	return len(entries), nil
}

func (t *Tree) StudentDirs(assignmentID string) ([]submission.StudentDir, error) {
	dir, err := t.contain(assignmentDirName(assignmentID))
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing assignment dir")
	}
	dirs := make([]submission.StudentDir, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || !strings.Contains(e.Name(), "_") {
			continue
		}
		parts := strings.SplitN(e.Name(), "_", 2)
		dirs = append(dirs, submission.StudentDir{
			Name:        e.Name(),
			StudentID:   parts[0],
			StudentName: parts[1],
		})
	}
	return dirs, nil
}

func (t *Tree) ClearStudentDir(assignmentID, studentID, studentName string) (bool, error) {
	dir, err := t.studentDir(assignmentID, studentID, studentName)
	if err != nil {
		return false, err
	}
	if _, err = os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "checking student dir")
	}
	if err = os.RemoveAll(dir); err != nil {
		return false, errors.Wrap(err, "removing student dir")
	}
	return true, nil
}

// SubmissionFilePath resolves a submitted file for download.
func (t *Tree) SubmissionFilePath(assignmentID, studentID, studentName, filename string) (string, error) {
	if filename != filepath.Base(filename) {
		return "", errors.Errorf("unsafe file name %q", filename)
	}
	dir, err := t.studentDir(assignmentID, studentID, studentName)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if _, err = os.Stat(path); err != nil {
		return "", errors.Wrap(err, "locating submitted file")
	}
	return path, nil
}

// leave.ImageStore

func (t *Tree) SaveLeaveImage(filename string, content io.Reader) error {
	if filename != filepath.Base(filename) {
		return errors.Errorf("unsafe file name %q", filename)
	}
	dir, err := t.contain(leaveImagesDir)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating leave images dir")
	}
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return errors.Wrap(err, "creating leave image")
	}
	defer func() { _ = f.Close() }()
	if _, err = io.Copy(f, content); err != nil {
		return errors.Wrap(err, "writing leave image")
	}
	return nil
}

// CopyAll copies every file recorded in the assignment's submission logs
// into destDir (created if absent), keeping the original file names.
// Files missing from disk are skipped.
func (t *Tree) CopyAll(assignmentID, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating destination dir")
	}
	dirs, err := t.StudentDirs(assignmentID)
	if err != nil {
		return nil, err
	}
	copied := make([]string, 0)
	for _, d := range dirs {
		log, err := t.ReadLog(assignmentID, d.StudentID, d.StudentName)
		if err != nil {
			return nil, err
		}
		srcDir, err := t.contain(assignmentDirName(assignmentID), d.Name)
		if err != nil {
			return nil, err
		}
		for _, rec := range log {
			for _, name := range rec.Filenames {
				if name != filepath.Base(name) {
					continue
				}
				src := filepath.Join(srcDir, name)
				if _, err = os.Stat(src); err != nil {
					continue
				}
				if err = copyFile(src, filepath.Join(destDir, name)); err != nil {
					return nil, err
				}
				copied = append(copied, name)
			}
		}
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer func() { _ = in.Close() }()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "creating destination file")
	}
	defer func() { _ = out.Close() }()
	_, err = io.Copy(out, in)
	return errors.Wrap(err, "copying file")
}
