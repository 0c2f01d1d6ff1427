package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/storage/uploadfs"
)

type assignmentApi struct {
	service *assignment.Service
	tree    *uploadfs.Tree
}

func RegisterAssignmentAPI(g *echo.Group, svc *assignment.Service, tree *uploadfs.Tree) {
	api := assignmentApi{service: svc, tree: tree}

	hg := g.Group("/homework")
	hg.GET("", api.assignmentQuery)
	hg.POST("", api.assignmentCreate)
	hg.PUT("/:id", api.assignmentUpdate)
	hg.DELETE("/:id", api.assignmentDestroy)
	hg.POST("/:id/download-all", api.assignmentDownloadAll)
}

func (api *assignmentApi) assignmentQuery(ctx echo.Context) error {
	asgs, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"homework": asgs})
}

func (api *assignmentApi) assignmentCreate(ctx echo.Context) error {
	data := new(assignment.NewAssignment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := api.service.Create(*data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "assignment published"})
}

func (api *assignmentApi) assignmentUpdate(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assignment id")
	}
	data := new(assignment.UpdateAssignment)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}
	if _, err = api.service.Update(id, *data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "assignment updated"})
}

func (api *assignmentApi) assignmentDestroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assignment id")
	}
	if err = api.service.Delete(id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "assignment deleted"})
}

type downloadAllRequest struct {
	SavePath string `json:"savePath" validate:"required"`
}

func (api *assignmentApi) assignmentDownloadAll(ctx echo.Context) error {
	data := new(downloadAllRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if data.SavePath == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "a save path is required")
	}

	copied, err := api.tree.CopyAll(ctx.Param("id"), data.SavePath)
	if err != nil {
		return err
	}
	if len(copied) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no submitted files found")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("copied %d files to directory: %s", len(copied), data.SavePath),
		"files":   copied,
	})
}
