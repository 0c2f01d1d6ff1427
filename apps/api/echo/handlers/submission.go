package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/submission"
	"github.com/trezcool/kazi/storage/uploadfs"
)

type submissionApi struct {
	service *submission.Service
	tree    *uploadfs.Tree
}

func RegisterSubmissionAPI(g *echo.Group, svc *submission.Service, tree *uploadfs.Tree) {
	api := submissionApi{service: svc, tree: tree}

	g.POST("/homework/upload", api.submissionUpload)
	g.GET("/submissions", api.submissionQuery)
	g.GET("/submissions/:assignmentID/:studentID/:filename", api.submissionDownload)
	g.DELETE("/submissions/:assignmentID/:studentID", api.submissionClear)
	g.GET("/missing-submissions", api.submissionMissing)
	g.GET("/query", api.submissionHistory)
}

// submissionUpload admits a multipart submission: form fields studentName,
// studentId, homeworkId, description, fileCount; files under file0..fileN.
func (api *submissionApi) submissionUpload(ctx echo.Context) error {
	req := submission.SubmitRequest{
		StudentName:  ctx.FormValue("studentName"),
		StudentID:    ctx.FormValue("studentId"),
		AssignmentID: ctx.FormValue("homeworkId"),
		Description:  ctx.FormValue("description"),
	}

	fileCount := 1
	if v := ctx.FormValue("fileCount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid file count")
		}
		fileCount = n
	}
	closers := make([]func() error, 0, fileCount)
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()
	for i := 0; i < fileCount; i++ {
		fh, err := ctx.FormFile(fmt.Sprintf("file%d", i))
		if err != nil {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		closers = append(closers, f.Close)
		req.Files = append(req.Files, core.File{Name: fh.Filename, Content: f})
	}

	res, err := api.service.Submit(req)
	if err != nil {
		if rej, ok := submission.AsError(err); ok {
			code := http.StatusBadRequest
			if rej.Kind == submission.KindAssignmentNotFound {
				code = http.StatusNotFound
			}
			return ctx.JSON(code, echo.Map{
				"success":   false,
				"errorKind": rej.Kind,
				"message":   rej.Message,
			})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "assignment submitted",
		"savedFiles": res.SavedFiles,
	})
}

func (api *submissionApi) submissionQuery(ctx echo.Context) error {
	filter := submission.QueryFilter{
		Course:      ctx.QueryParam("course"),
		StudentID:   ctx.QueryParam("studentId"),
		StudentName: ctx.QueryParam("studentName"),
	}
	views, err := api.service.List(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"submissions": views})
}

func (api *submissionApi) submissionDownload(ctx echo.Context) error {
	studentName := ctx.QueryParam("studentName")
	filename := ctx.Param("filename")
	path, err := api.tree.SubmissionFilePath(ctx.Param("assignmentID"), ctx.Param("studentID"), studentName, filename)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}
	return ctx.Attachment(path, filename)
}

func (api *submissionApi) submissionClear(ctx echo.Context) error {
	studentName := ctx.QueryParam("studentName")
	if studentName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "a student name is required")
	}

	cleared, err := api.service.Clear(ctx.Param("assignmentID"), ctx.Param("studentID"), studentName)
	if err != nil {
		return err
	}
	msg := "no submission history"
	if cleared {
		msg = "submission history cleared"
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "cleared": cleared, "message": msg})
}

func (api *submissionApi) submissionMissing(ctx echo.Context) error {
	missing, err := api.service.Missing(ctx.QueryParam("course"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"missing": missing})
}

func (api *submissionApi) submissionHistory(ctx echo.Context) error {
	history, err := api.service.StudentHistory(ctx.QueryParam("studentId"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "submissions": history})
}
