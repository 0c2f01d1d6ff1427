package leave

import (
	"github.com/trezcool/kazi/core"
)

// Request statuses. Transitions: pending to approved or rejected; terminal
// states never reopen.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a leave request. At most one per student per calendar day.
type Request struct {
	ID          int      `json:"id"`
	StudentName string   `json:"studentName"`
	StudentID   string   `json:"studentId"`
	LeaveType   string   `json:"leaveType"`
	Reason      string   `json:"reason"`
	LeaveImages []string `json:"leaveImages"`
	SubmitTime  string   `json:"submitTime"`
	Status      string   `json:"status"`
}

// NewRequest contains information needed to file a leave request.
type NewRequest struct {
	StudentName string `json:"studentName" validate:"required"`
	StudentID   string `json:"studentId" validate:"required"`
	LeaveType   string `json:"leaveType" validate:"required"`
	Reason      string `json:"reason" validate:"required"`

	Images []core.File `json:"-"`
}

func (nr *NewRequest) Validate() error {
	nr.StudentName = core.CleanString(nr.StudentName)
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.LeaveType = core.CleanString(nr.LeaveType)
	nr.Reason = core.CleanString(nr.Reason)
	return core.Validate.Struct(nr)
}
