package jsondb

import (
	"github.com/trezcool/kazi/core/leave"
)

type leavesDoc struct {
	Leaves []leave.Request `json:"leaves"`
}

type leaveRepository struct {
	doc *document
}

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{doc: db.leaves}
}

func (r *leaveRepository) CreateLeaveRequest(req leave.Request) (leave.Request, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data leavesDoc
	if err := r.doc.load(&data); err != nil {
		return leave.Request{}, err
	}

	req.ID = 1
	for _, l := range data.Leaves {
		if l.ID >= req.ID {
			req.ID = l.ID + 1
		}
	}
	data.Leaves = append(data.Leaves, req)
	if err := r.doc.save(&data); err != nil {
		return leave.Request{}, err
	}
	return req, nil
}

func (r *leaveRepository) QueryAllLeaveRequests() ([]leave.Request, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data leavesDoc
	if err := r.doc.load(&data); err != nil {
		return nil, err
	}
	return data.Leaves, nil
}

func (r *leaveRepository) GetLeaveRequestByID(id int) (leave.Request, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data leavesDoc
	if err := r.doc.load(&data); err != nil {
		return leave.Request{}, err
	}
	for _, req := range data.Leaves {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.Request{}, leave.ErrNotFound
}

func (r *leaveRepository) UpdateLeaveRequest(req leave.Request) (leave.Request, error) {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	var data leavesDoc
	if err := r.doc.load(&data); err != nil {
		return leave.Request{}, err
	}
	for i, l := range data.Leaves {
		if l.ID == req.ID {
			data.Leaves[i] = req
			if err := r.doc.save(&data); err != nil {
				return leave.Request{}, err
			}
			return req, nil
		}
	}
	return leave.Request{}, leave.ErrNotFound
}

func (r *leaveRepository) ReplaceLeaveRequests(reqs []leave.Request) error {
	r.doc.mutex.Lock()
	defer r.doc.mutex.Unlock()

	data := leavesDoc{Leaves: reqs}
	return r.doc.save(&data)
}
