package retention_test

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/retention"
	"github.com/trezcool/kazi/services/logger"
	"github.com/trezcool/kazi/storage/jsondb"
	"github.com/trezcool/kazi/storage/uploadfs"
	"github.com/trezcool/kazi/tests"
)

type fixture struct {
	asgRepo   assignment.Repository
	leaveRepo leave.Repository
	tree      *uploadfs.Tree
	svc       *retention.Service
}

func setup(t *testing.T, retentionDays int) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	f := &fixture{
		asgRepo:   jsondb.NewAssignmentRepository(db),
		leaveRepo: jsondb.NewLeaveRepository(db),
		tree:      testutil.OpenTree(t),
	}
	logger := logsvc.NewConsoleLogger(log.New(ioutil.Discard, "", 0))
	f.svc = retention.NewService(f.asgRepo, f.leaveRepo, f.tree, logger, retentionDays)
	return f
}

func Test_retentionService_Sweep_leaves(t *testing.T) {
	f := setup(t, 2)
	now := time.Date(2021, 6, 15, 12, 0, 0, 0, time.Local)

	// yesterday's request gets swept; today's and the unparseable one stay
	testutil.CreateLeaveRequest(t, f.leaveRepo, "S1", "Alice", "2021-06-14 09:00:00", leave.StatusApproved)
	testutil.CreateLeaveRequest(t, f.leaveRepo, "S2", "Bob", "2021-06-15 09:00:00", leave.StatusPending)
	testutil.CreateLeaveRequest(t, f.leaveRepo, "S3", "Carol", "not a timestamp", leave.StatusPending)

	res, err := f.svc.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() failed: %v", err)
	}
	if res.LeavesRemoved != 1 {
		t.Errorf("LeavesRemoved = %d, want 1", res.LeavesRemoved)
	}

	kept, err := f.leaveRepo.QueryAllLeaveRequests()
	if err != nil {
		t.Fatalf("QueryAllLeaveRequests() failed: %v", err)
	}
	if len(kept) != 2 {
		t.Fatalf("kept %d leave requests, want 2", len(kept))
	}
	for _, req := range kept {
		if req.StudentID == "S1" {
			t.Errorf("yesterday's request survived the sweep: %+v", req)
		}
	}
}

func Test_retentionService_Sweep_assignments(t *testing.T) {
	f := setup(t, 2)
	now := time.Date(2021, 6, 15, 12, 0, 0, 0, time.Local)

	// deadline dates relative to the cutoff (2021-06-13): old, boundary and
	// the date-only one get swept, fresh is within the window, broken cannot
	// be parsed
	old := testutil.CreateAssignment(t, f.asgRepo, "Networks", "Old", "2021-06-12 23:59")
	boundary := testutil.CreateAssignment(t, f.asgRepo, "Networks", "Boundary", "2021-06-13 00:00")
	dateOnly := testutil.CreateAssignment(t, f.asgRepo, "Networks", "DateOnly", "2021-06-10")
	fresh := testutil.CreateAssignment(t, f.asgRepo, "Networks", "Fresh", "2021-06-14 08:00")
	broken := testutil.CreateAssignment(t, f.asgRepo, "Networks", "Broken", "whenever")

	for _, asg := range []assignment.Assignment{old, boundary, dateOnly, fresh} {
		if err := f.tree.EnsureAssignmentDir(asg.ID); err != nil {
			t.Fatalf("EnsureAssignmentDir() failed: %v", err)
		}
	}

	res, err := f.svc.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() failed: %v", err)
	}
	if res.AssignmentsRemoved != 3 {
		t.Errorf("AssignmentsRemoved = %d, want 3", res.AssignmentsRemoved)
	}

	kept, err := f.asgRepo.QueryAllAssignments()
	if err != nil {
		t.Fatalf("QueryAllAssignments() failed: %v", err)
	}
	keptIDs := make(map[int]bool, len(kept))
	for _, asg := range kept {
		keptIDs[asg.ID] = true
	}
	if keptIDs[old.ID] || keptIDs[boundary.ID] || keptIDs[dateOnly.ID] {
		t.Errorf("swept assignments still present: kept=%v", keptIDs)
	}
	if !keptIDs[fresh.ID] || !keptIDs[broken.ID] {
		t.Errorf("kept assignments missing: kept=%v", keptIDs)
	}

	// directories follow the records
	for _, asg := range []assignment.Assignment{old, boundary, dateOnly} {
		dir := filepath.Join(f.tree.Root(), "homework_"+strconv.Itoa(asg.ID))
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("directory %s survived the sweep", dir)
		}
	}
	if _, err := os.Stat(filepath.Join(f.tree.Root(), "homework_"+strconv.Itoa(fresh.ID))); err != nil {
		t.Errorf("fresh assignment directory removed: %v", err)
	}
}

func Test_retentionService_Sweep_empty(t *testing.T) {
	f := setup(t, 2)

	res, err := f.svc.Sweep(time.Date(2021, 6, 15, 12, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("Sweep() failed: %v", err)
	}
	if res.LeavesRemoved != 0 || res.AssignmentsRemoved != 0 {
		t.Errorf("Sweep() on empty stores = %+v, want zero counts", res)
	}
}
