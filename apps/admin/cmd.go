package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/kazi/core/retention"
	"github.com/trezcool/kazi/core/student"
	"github.com/trezcool/kazi/core/submission"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	stdSvc *student.Service
	subSvc *submission.Service
	retSvc *retention.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addstudent -studentid ID -name NAME                          - enroll a student")
	fmt.Println("  clearsubmission -assignment ID -studentid ID -name NAME      - clear a student's submission for an assignment")
	fmt.Println("  sweep                                                        - remove stale leave requests and expired assignments")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentID := addStudentCmd.String("studentid", "", "The student's ID number.")
	addStudentName := addStudentCmd.String("name", "", "The student's name.")

	clearCmd := flag.NewFlagSet("clearsubmission", flag.ExitOnError)
	clearAssignment := clearCmd.String("assignment", "", "The assignment's ID.")
	clearStudentID := clearCmd.String("studentid", "", "The student's ID number.")
	clearStudentName := clearCmd.String("name", "", "The student's name.")

	sweepCmd := flag.NewFlagSet("sweep", flag.ExitOnError)

	switch args[1] {
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentID == "" || *addStudentName == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentID, *addStudentName)
	case "clearsubmission":
		if err := clearCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *clearAssignment == "" || *clearStudentID == "" || *clearStudentName == "" {
			clearCmd.Usage()
			return errHelp
		}
		return cli.clearSubmission(*clearAssignment, *clearStudentID, *clearStudentName)
	case "sweep":
		if err := sweepCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.sweep()
	default:
		cli.printUsage()
		return errHelp
	}
}
