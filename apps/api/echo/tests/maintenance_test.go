package tests

import (
	"net/http"
	"os"
	"testing"

	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/tests"
)

func Test_maintenanceApi_clearCache(t *testing.T) {
	resetStores(t)

	// stale records: an old leave request and a long-expired assignment
	testutil.CreateLeaveRequest(t, leaveRepo, "S1", "Alice", "2021-06-01 09:00:00", leave.StatusApproved)
	old := testutil.CreateAssignment(t, asgRepo, "Networks", "Old Lab", "2021-06-01 00:00")
	fresh := testutil.CreateAssignment(t, asgRepo, "Networks", "Fresh Lab", "2099-01-01 00:00")

	req, rec := newRequest(http.MethodPost, "/api/clear-cache")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshalObj(t, map[string]interface{}{
			"success":            true,
			"message":            "cache cleared",
			"leavesRemoved":      1,
			"assignmentsRemoved": 1,
		}),
	}, rec)

	if _, err := asgRepo.GetAssignmentByID(old.ID); err == nil {
		t.Error("expired assignment survived the sweep")
	}
	if _, err := asgRepo.GetAssignmentByID(fresh.ID); err != nil {
		t.Errorf("fresh assignment swept: %v", err)
	}
	reqs, err := leaveRepo.QueryAllLeaveRequests()
	if err != nil {
		t.Fatalf("QueryAllLeaveRequests() failed: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("stale leave requests survived: %+v", reqs)
	}
}

func Test_maintenanceApi_updateNotice(t *testing.T) {
	resetStores(t)

	// missing file reads as an empty notice
	req, rec := newRequest(http.MethodGet, "/api/update-notice")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshalObj(t, map[string]interface{}{"success": true, "notice": ""}),
	}, rec)

	if err := os.WriteFile(conf.NoticeFile, []byte("maintenance tonight"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	req, rec = newRequest(http.MethodGet, "/api/update-notice")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshalObj(t, map[string]interface{}{"success": true, "notice": "maintenance tonight"}),
	}, rec)
}
