package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/leave"
	"github.com/trezcool/kazi/core/retention"
	"github.com/trezcool/kazi/core/student"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/storage/uploadfs"

	"github.com/trezcool/kazi/apps/api/echo/handlers"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf          *core.Config
		Logger        core.Logger
		StudentSvc    *student.Service
		AssignmentSvc *assignment.Service
		SubmissionSvc *submission.Service
		LeaveSvc      *leave.Service
		RetentionSvc  *retention.Service
		Tree          *uploadfs.Tree
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	handlers.RegisterStudentAPI(api, s.opts.StudentSvc)
	handlers.RegisterAssignmentAPI(api, s.opts.AssignmentSvc, s.opts.Tree)
	handlers.RegisterSubmissionAPI(api, s.opts.SubmissionSvc, s.opts.Tree)
	handlers.RegisterLeaveAPI(api, s.opts.LeaveSvc)
	handlers.RegisterMaintenanceAPI(api, s.opts.RetentionSvc, s.opts.Conf)
}

func (s *server) Start() {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
	}()
	<-s.shutdown
}

// signalShutdown initiates a graceful shutdown when an unrecoverable error
// is caught at the API boundary.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Kazi API!")
}
