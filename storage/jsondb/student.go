package jsondb

import (
	"github.com/trezcool/kazi/core/student"
)

type studentsDoc struct {
	Students []student.Student `json:"students"`
}

type studentRepository struct {
	doc *document
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{doc: db.students}
}

func (r *studentRepository) CheckStudentIDUniqueness(studentID string, excl ...student.Student) error {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return err
	}
	return checkStudentIDFree(data.Students, studentID, excl...)
}

func checkStudentIDFree(students []student.Student, studentID string, excl ...student.Student) error {
	for _, std := range students {
		if std.StudentID != studentID {
			continue
		}
		excluded := false
		for _, ex := range excl {
			if ex.ID == std.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return student.ErrStudentIDExists
		}
	}
	return nil
}

func (r *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return student.Student{}, err
	}
	if err := checkStudentIDFree(data.Students, std.StudentID); err != nil {
		return student.Student{}, err
	}

	// surrogate key: 1 + max(existing), computed fresh on every insert
	std.ID = 1
	for _, s := range data.Students {
		if s.ID >= std.ID {
			std.ID = s.ID + 1
		}
	}
	data.Students = append(data.Students, std)
	if err := r.doc.save(&data); err != nil {
		return student.Student{}, err
	}
	return std, nil
}

func (r *studentRepository) QueryAllStudents() ([]student.Student, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return nil, err
	}
	return data.Students, nil
}

func (r *studentRepository) GetStudentByID(id int) (student.Student, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return student.Student{}, err
	}
	for _, std := range data.Students {
		if std.ID == id {
			return std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (r *studentRepository) GetStudentByNaturalKey(studentID, name string) (student.Student, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return student.Student{}, err
	}
	for _, std := range data.Students {
		if std.StudentID == studentID && std.Name == name {
			return std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (r *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return student.Student{}, err
	}
	idx := -1
	for i, s := range data.Students {
		if s.ID == std.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return student.Student{}, student.ErrNotFound
	}
	if err := checkStudentIDFree(data.Students, std.StudentID, std); err != nil {
		return student.Student{}, err
	}
	data.Students[idx] = std
	if err := r.doc.save(&data); err != nil {
		return student.Student{}, err
	}
	return std, nil
}

func (r *studentRepository) DeleteStudentsByID(ids ...int) error {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data studentsDoc
	if err := r.doc.load(&data); err != nil {
		return err
	}
	kept := make([]student.Student, 0, len(data.Students))
	for _, std := range data.Students {
		remove := false
		for _, id := range ids {
			if std.ID == id {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, std)
		}
	}
	data.Students = kept
	return r.doc.save(&data)
}
