package leave

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/student"
)

var (
	// errors
	ErrNotFound             = core.NewNotFoundError("leave request not found")
	ErrStudentMismatch      = core.NewNotFoundError("student not found or name does not match student ID")
	ErrAlreadyFiledToday    = core.NewConflictError("a leave request was already filed today")
	ErrTransitionNotAllowed = core.NewConflictError("only pending leave requests can be approved or rejected")

	nowFunc = time.Now // mockable
)

const imageStampFormat = "20060102_150405"

type (
	Repository interface {
		CreateLeaveRequest(req Request) (Request, error)
		QueryAllLeaveRequests() ([]Request, error)
		GetLeaveRequestByID(id int) (Request, error)
		UpdateLeaveRequest(req Request) (Request, error)
		// ReplaceLeaveRequests rewrites the whole collection (retention).
		ReplaceLeaveRequests(reqs []Request) error
	}

	// ImageStore persists supporting images under the upload tree.
	ImageStore interface {
		SaveLeaveImage(filename string, content io.Reader) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		images   ImageStore
	}
)

func NewService(repo Repository, students student.Repository, images ImageStore) *Service {
	return &Service{repo: repo, students: students, images: images}
}

// Submit files a new leave request after verifying the student's natural
// key and the one-request-per-day rule.
func (svc *Service) Submit(nr NewRequest) (Request, error) {
	if err := nr.Validate(); err != nil {
		return Request{}, err
	}

	if _, err := svc.students.GetStudentByNaturalKey(nr.StudentID, nr.StudentName); err != nil {
		if err == student.ErrNotFound {
			return Request{}, ErrStudentMismatch
		}
		return Request{}, err
	}

	now := nowFunc()
	reqs, err := svc.repo.QueryAllLeaveRequests()
	if err != nil {
		return Request{}, err
	}
	today := core.DateOf(now)
	for _, req := range reqs {
		if req.StudentID != nr.StudentID {
			continue
		}
		if t, err := core.ParseTimestamp(req.SubmitTime, core.TimestampFormat); err == nil && core.DateOf(t).Equal(today) {
			return Request{}, ErrAlreadyFiledToday
		}
	}

	imageNames := make([]string, 0, len(nr.Images))
	for _, img := range nr.Images {
		if img.Name == "" {
			continue
		}
		name := fmt.Sprintf("%s_%s_%s_%s",
			nr.StudentName, nr.StudentID, now.Format(imageStampFormat), filepath.Base(img.Name))
		if err = svc.images.SaveLeaveImage(name, img.Content); err != nil {
			return Request{}, err
		}
		imageNames = append(imageNames, name)
	}

	req := Request{
		StudentName: nr.StudentName,
		StudentID:   nr.StudentID,
		LeaveType:   nr.LeaveType,
		Reason:      nr.Reason,
		LeaveImages: imageNames,
		SubmitTime:  now.Format(core.TimestampFormat),
		Status:      StatusPending,
	}
	return svc.repo.CreateLeaveRequest(req)
}

// List returns every request, or only those filed on date ("2006-01-02").
func (svc *Service) List(date string) ([]Request, error) {
	reqs, err := svc.repo.QueryAllLeaveRequests()
	if err != nil {
		return nil, err
	}
	date = core.CleanString(date)
	if date == "" {
		return reqs, nil
	}
	filtered := make([]Request, 0, len(reqs))
	for _, req := range reqs {
		if t, err := core.ParseTimestamp(req.SubmitTime, core.TimestampFormat); err == nil && t.Format("2006-01-02") == date {
			filtered = append(filtered, req)
		}
	}
	return filtered, nil
}

func (svc *Service) Approve(id int) (Request, error) {
	return svc.transition(id, StatusApproved)
}

func (svc *Service) Reject(id int) (Request, error) {
	return svc.transition(id, StatusRejected)
}

func (svc *Service) transition(id int, status string) (Request, error) {
	req, err := svc.repo.GetLeaveRequestByID(id)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, ErrTransitionNotAllowed
	}
	req.Status = status
	return svc.repo.UpdateLeaveRequest(req)
}
