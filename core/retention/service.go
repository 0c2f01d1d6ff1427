// Package retention removes stale leave requests and expired assignments
// (with their file subtrees) past the configured age.
package retention

import (
	"time"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/leave"
)

// Result reports what a sweep removed.
type Result struct {
	LeavesRemoved      int `json:"leavesRemoved"`
	AssignmentsRemoved int `json:"assignmentsRemoved"`
}

type Service struct {
	assignments assignment.Repository
	leaves      leave.Repository
	dirs        assignment.Dirs
	log         core.Logger

	// retentionDays is how many days past its deadline date an
	// assignment survives before being swept.
	retentionDays int
}

func NewService(assignments assignment.Repository, leaves leave.Repository, dirs assignment.Dirs, log core.Logger, retentionDays int) *Service {
	return &Service{
		assignments:   assignments,
		leaves:        leaves,
		dirs:          dirs,
		log:           log,
		retentionDays: retentionDays,
	}
}

// Sweep drops every leave request filed before now's date and removes every
// assignment whose deadline date is at least retentionDays old, together
// with its directory subtree. The two effects are independent; an
// assignment whose deadline parses in no supported layout is skipped.
func (svc *Service) Sweep(now time.Time) (Result, error) {
	var res Result

	today := core.DateOf(now)

	// leave requests: keep only today's
	reqs, err := svc.leaves.QueryAllLeaveRequests()
	if err != nil {
		return res, err
	}
	kept := make([]leave.Request, 0, len(reqs))
	for _, req := range reqs {
		t, err := core.ParseTimestamp(req.SubmitTime, core.TimestampFormat)
		if err == nil && core.DateOf(t).Before(today) {
			continue
		}
		kept = append(kept, req)
	}
	if res.LeavesRemoved = len(reqs) - len(kept); res.LeavesRemoved > 0 {
		if err = svc.leaves.ReplaceLeaveRequests(kept); err != nil {
			return res, err
		}
	}

	// assignments: deadline date <= today - retentionDays
	cutoff := today.AddDate(0, 0, -svc.retentionDays)
	asgs, err := svc.assignments.QueryAllAssignments()
	if err != nil {
		return res, err
	}
	for _, asg := range asgs {
		deadline, err := assignment.ParseDeadline(asg.Deadline)
		if err != nil {
			svc.log.Warn("sweep: skipping assignment with unparseable deadline", asg.ID, asg.Deadline)
			continue
		}
		if core.DateOf(deadline).After(cutoff) {
			continue
		}
		if err = svc.dirs.RemoveAssignmentDir(asg.ID); err != nil {
			return res, err
		}
		if err = svc.assignments.DeleteAssignmentsByID(asg.ID); err != nil {
			return res, err
		}
		res.AssignmentsRemoved++
	}
	return res, nil
}
