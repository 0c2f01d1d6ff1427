package main

import (
	"log"
	"os"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/retention"
	"github.com/trezcool/kazi/core/student"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/services/logger"
	"github.com/trezcool/kazi/storage/jsondb"
	"github.com/trezcool/kazi/storage/uploadfs"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up storage
	db, err := jsondb.Open(conf.DataDir)
	errAndDie(err)
	tree, err := uploadfs.New(conf.UploadDir)
	errAndDie(err)

	stdRepo := jsondb.NewStudentRepository(db)
	asgRepo := jsondb.NewAssignmentRepository(db)
	leaveRepo := jsondb.NewLeaveRepository(db)

	// start CLI
	cli := commandLine{
		stdSvc: student.NewService(stdRepo),
		subSvc: submission.NewService(stdRepo, asgRepo, tree),
		retSvc: retention.NewService(
			asgRepo, leaveRepo, tree, logsvc.NewConsoleLogger(logger), conf.RetentionDays),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
