package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/leave"
)

type leaveApi struct {
	service *leave.Service
}

func RegisterLeaveAPI(g *echo.Group, svc *leave.Service) {
	api := leaveApi{service: svc}

	lg := g.Group("/leave")
	lg.POST("", api.leaveSubmit)
	lg.GET("/list", api.leaveQuery)
	lg.POST("/approve/:id", api.leaveApprove)
	lg.POST("/reject/:id", api.leaveReject)
}

// leaveSubmit files a multipart leave request; supporting images come in
// under the leaveImages field.
func (api *leaveApi) leaveSubmit(ctx echo.Context) error {
	data := leave.NewRequest{
		StudentName: ctx.FormValue("studentName"),
		StudentID:   ctx.FormValue("studentId"),
		LeaveType:   ctx.FormValue("leaveType"),
		Reason:      ctx.FormValue("reason"),
	}

	closers := make([]func() error, 0)
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()
	if form, err := ctx.MultipartForm(); err == nil {
		for _, fh := range form.File["leaveImages"] {
			f, err := fh.Open()
			if err != nil {
				return err
			}
			closers = append(closers, f.Close)
			data.Images = append(data.Images, core.File{Name: fh.Filename, Content: f})
		}
	}

	if _, err := api.service.Submit(data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "leave request filed"})
}

func (api *leaveApi) leaveQuery(ctx echo.Context) error {
	leaves, err := api.service.List(ctx.QueryParam("date"))
	if err != nil {
		return err
	}
	if leaves == nil {
		leaves = []leave.Request{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "leaves": leaves})
}

func (api *leaveApi) leaveApprove(ctx echo.Context) error {
	return api.transition(ctx, api.service.Approve, "leave request approved")
}

func (api *leaveApi) leaveReject(ctx echo.Context) error {
	return api.transition(ctx, api.service.Reject, "leave request rejected")
}

func (api *leaveApi) transition(ctx echo.Context, do func(int) (leave.Request, error), msg string) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid leave request id")
	}
	if _, err = do(id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": msg})
}
