package jsondb

import (
	"github.com/trezcool/kazi/core/assignment"
)

type homeworkDoc struct {
	Homework []assignment.Assignment `json:"homework"`
}

type assignmentRepository struct {
	doc *document
}

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{doc: db.assignments}
}

func (r *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data homeworkDoc
	if err := r.doc.load(&data); err != nil {
		return assignment.Assignment{}, err
	}

	asg.ID = 1
	for _, a := range data.Homework {
		if a.ID >= asg.ID {
			asg.ID = a.ID + 1
		}
	}
	data.Homework = append(data.Homework, asg)
	if err := r.doc.save(&data); err != nil {
		return assignment.Assignment{}, err
	}
	return asg, nil
}

func (r *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data homeworkDoc
	if err := r.doc.load(&data); err != nil {
		return nil, err
	}
	return data.Homework, nil
}

func (r *assignmentRepository) GetAssignmentByID(id int) (assignment.Assignment, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data homeworkDoc
	if err := r.doc.load(&data); err != nil {
		return assignment.Assignment{}, err
	}
	for _, asg := range data.Homework {
		if asg.ID == id {
			return asg, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (r *assignmentRepository) FilterAssignmentsByCourse(course string) ([]assignment.Assignment, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data homeworkDoc
	if err := r.doc.load(&data); err != nil {
		return nil, err
	}
	filtered := make([]assignment.Assignment, 0, len(data.Homework))
	for _, asg := range data.Homework {
		if asg.CourseName == course {
			filtered = append(filtered, asg)
		}
	}
	return filtered, nil
}

func (r *assignmentRepository) UpdateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data homeworkDoc
	if err := r.doc.load(&data); err != nil {
		return assignment.Assignment{}, err
	}
	for i, a := range data.Homework {
		if a.ID == asg.ID {
			data.Homework[i] = asg
			if err := r.doc.save(&data); err != nil {
				return assignment.Assignment{}, err
			}
			return asg, nil
		}
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (r *assignmentRepository) DeleteAssignmentsByID(ids ...int) error {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data homeworkDoc
	if err := r.doc.load(&data); err != nil {
		return err
	}
	kept := make([]assignment.Assignment, 0, len(data.Homework))
	for _, asg := range data.Homework {
		remove := false
		for _, id := range ids {
			if asg.ID == id {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, asg)
		}
	}
	data.Homework = kept
	return r.doc.save(&data)
}
