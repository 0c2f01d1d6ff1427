package student

import (
	"github.com/trezcool/kazi/core"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("student not found")
	ErrStudentIDExists = core.NewConflictError("a student with this student ID already exists")
)

type (
	Repository interface {
		// CheckStudentIDUniqueness returns ErrStudentIDExists if another
		// student (not in excludedStudents) holds studentID.
		CheckStudentIDUniqueness(studentID string, excludedStudents ...Student) error
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		// GetStudentByNaturalKey does an exact, case-sensitive match on the
		// (studentID, name) pair.
		GetStudentByNaturalKey(studentID, name string) (Student, error)
		UpdateStudent(std Student) (Student, error)
		DeleteStudentsByID(ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(studentID string, exclStudents ...Student) error {
	if err := svc.repo.CheckStudentIDUniqueness(studentID, exclStudents...); err != nil {
		if err == ErrStudentIDExists {
			return core.NewValidationError(err, core.FieldError{Field: "studentId", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	std := Student{
		StudentID: ns.StudentID,
		Name:      ns.Name,
	}
	return svc.repo.CreateStudent(std)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByNaturalKey(studentID, name string) (Student, error) {
	return svc.repo.GetStudentByNaturalKey(studentID, name)
}

func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	std := Student{
		ID:        id,
		StudentID: us.StudentID,
		Name:      us.Name,
	}
	return svc.repo.UpdateStudent(std)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteStudentsByID(ids...)
}
