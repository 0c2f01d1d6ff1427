package student

import (
	"github.com/trezcool/kazi/core"
)

// Student is an enrolled class member. Other records never reference the
// surrogate ID; they identify a student by the (StudentID, Name) pair.
type Student struct {
	ID        int    `json:"id"`
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	StudentID string `json:"studentId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.Name = core.CleanString(ns.Name)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.StudentID)
}

// UpdateStudent defines what information may be provided to modify an
// enrolled Student.
type UpdateStudent struct {
	StudentID string `json:"studentId" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

func (us *UpdateStudent) Validate(orig Student, svc *Service) error {
	us.StudentID = core.CleanString(us.StudentID)
	us.Name = core.CleanString(us.Name)

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	return svc.CheckUniqueness(us.StudentID, orig)
}
