package assignment

import (
	"github.com/trezcool/kazi/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("assignment not found")
)

type (
	Repository interface {
		CreateAssignment(asg Assignment) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id int) (Assignment, error)
		// FilterAssignmentsByCourse does an exact match on CourseName.
		FilterAssignmentsByCourse(course string) ([]Assignment, error)
		UpdateAssignment(asg Assignment) (Assignment, error)
		DeleteAssignmentsByID(ids ...int) error
	}

	// Dirs owns assignment directories in the upload tree: one per
	// assignment, created on publication and released on deletion.
	Dirs interface {
		EnsureAssignmentDir(assignmentID int) error
		RemoveAssignmentDir(assignmentID int) error
	}

	Service struct {
		repo Repository
		dirs Dirs
	}
)

func NewService(repo Repository, dirs Dirs) *Service {
	return &Service{repo: repo, dirs: dirs}
}

func (svc *Service) Create(na NewAssignment) (Assignment, error) {
	formats := na.FileNameFormats
	if len(formats) == 0 {
		formats = DefaultFileNameFormats
	}
	asg := Assignment{
		CourseName:      na.CourseName,
		Title:           na.Title,
		Description:     na.Requirements,
		Deadline:        na.Deadline,
		FileNameFormats: formats,
		Status:          StatusActive,
	}
	asg, err := svc.repo.CreateAssignment(asg)
	if err != nil {
		return Assignment{}, err
	}
	if err = svc.dirs.EnsureAssignmentDir(asg.ID); err != nil {
		return Assignment{}, err
	}
	return asg, nil
}

func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) GetByID(id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *Service) FilterByCourse(course string) ([]Assignment, error) {
	return svc.repo.FilterAssignmentsByCourse(course)
}

func (svc *Service) Update(id int, ua UpdateAssignment) (Assignment, error) {
	orig, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	orig.CourseName = ua.CourseName
	orig.Title = ua.Title
	orig.Description = ua.Requirements
	orig.Deadline = ua.Deadline
	// an omitted formats list keeps the stored one
	if len(ua.FileNameFormats) > 0 {
		orig.FileNameFormats = ua.FileNameFormats
	}
	return svc.repo.UpdateAssignment(orig)
}

// Delete removes the assignments and releases their directory subtrees
// (cascading over every contained submission).
func (svc *Service) Delete(ids ...int) error {
	for _, id := range ids {
		if err := svc.dirs.RemoveAssignmentDir(id); err != nil {
			return err
		}
	}
	return svc.repo.DeleteAssignmentsByID(ids...)
}
