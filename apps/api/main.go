package main

import (
	"log"
	"os"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/retention"
	"github.com/trezcool/kazi/core/student"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/services/logger"
	"github.com/trezcool/kazi/storage/jsondb"
	"github.com/trezcool/kazi/storage/uploadfs"

	echoapi "github.com/trezcool/kazi/apps/api/echo"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, conf.AppName+" ", log.LstdFlags|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up storage
	db, err := jsondb.Open(conf.DataDir)
	if err != nil {
		logger.Fatal("opening record store", err)
	}
	tree, err := uploadfs.New(conf.UploadDir)
	if err != nil {
		logger.Fatal("opening upload tree", err)
	}

	// set up repos & services
	stdRepo := jsondb.NewStudentRepository(db)
	asgRepo := jsondb.NewAssignmentRepository(db)
	leaveRepo := jsondb.NewLeaveRepository(db)

	stdSvc := student.NewService(stdRepo)
	asgSvc := assignment.NewService(asgRepo, tree)
	subSvc := submission.NewService(stdRepo, asgRepo, tree)
	leaveSvc := leave.NewService(leaveRepo, stdRepo, tree)
	retSvc := retention.NewService(asgRepo, leaveRepo, tree, logger, conf.RetentionDays)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:          conf.ServerAddress(),
			Conf:          conf,
			Logger:        logger,
			StudentSvc:    stdSvc,
			AssignmentSvc: asgSvc,
			SubmissionSvc: subSvc,
			LeaveSvc:      leaveSvc,
			RetentionSvc:  retSvc,
			Tree:          tree,
		},
	)
	logger.Info("starting API server", conf.ServerAddress())
	app.Start()
}
