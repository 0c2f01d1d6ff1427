package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/kazi/core/student"
)

type studentApi struct {
	service *student.Service
}

func RegisterStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{service: svc}

	sg := g.Group("/students")
	sg.GET("", api.studentQuery)
	sg.POST("", api.studentCreate)
	sg.PUT("/:id", api.studentUpdate)
	sg.DELETE("/:id", api.studentDestroy)
}

func (api *studentApi) studentQuery(ctx echo.Context) error {
	students, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"students": students})
}

func (api *studentApi) studentCreate(ctx echo.Context) error {
	data := new(student.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.service); err != nil {
		return err
	}
	if _, err := api.service.Create(*data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "student added"})
}

func (api *studentApi) studentUpdate(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}
	orig, err := api.service.GetByID(id)
	if err != nil {
		return err
	}

	data := new(student.UpdateStudent)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(orig, api.service); err != nil {
		return err
	}
	if _, err = api.service.Update(id, *data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "student updated"})
}

func (api *studentApi) studentDestroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}
	if err = api.service.Delete(id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "message": "student deleted"})
}
