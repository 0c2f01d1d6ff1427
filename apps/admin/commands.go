package main

import (
	"fmt"
	"time"

	"github.com/trezcool/kazi/core/student"
)

// addStudent enrolls a new student.
func (cli *commandLine) addStudent(studentID, name string) error {
	ns := student.NewStudent{StudentID: studentID, Name: name}
	if err := ns.Validate(cli.stdSvc); err != nil {
		return err
	}
	std, err := cli.stdSvc.Create(ns)
	if err != nil {
		return err
	}
	fmt.Printf("student %q (%s) enrolled with id %d\n", std.Name, std.StudentID, std.ID)
	return nil
}

// clearSubmission empties a student's submission slot so they can resubmit.
func (cli *commandLine) clearSubmission(assignmentID, studentID, name string) error {
	cleared, err := cli.subSvc.Clear(assignmentID, studentID, name)
	if err != nil {
		return err
	}
	if cleared {
		fmt.Println("submission history cleared")
	} else {
		fmt.Println("no submission history")
	}
	return nil
}

// sweep removes stale leave requests and expired assignments.
func (cli *commandLine) sweep() error {
	res, err := cli.retSvc.Sweep(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("swept %d leave requests and %d assignments\n", res.LeavesRemoved, res.AssignmentsRemoved)
	return nil
}
