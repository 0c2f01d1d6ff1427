package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/retention"
)

type maintenanceApi struct {
	service *retention.Service
	conf    *core.Config
}

func RegisterMaintenanceAPI(g *echo.Group, svc *retention.Service, conf *core.Config) {
	api := maintenanceApi{service: svc, conf: conf}

	g.POST("/clear-cache", api.clearCache)
	g.GET("/update-notice", api.updateNotice)
}

func (api *maintenanceApi) clearCache(ctx echo.Context) error {
	res, err := api.service.Sweep(time.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":            true,
		"message":            "cache cleared",
		"leavesRemoved":      res.LeavesRemoved,
		"assignmentsRemoved": res.AssignmentsRemoved,
	})
}

// updateNotice serves the optional plain-text notice; a missing file is an
// empty notice, not an error.
func (api *maintenanceApi) updateNotice(ctx echo.Context) error {
	raw, err := os.ReadFile(api.conf.NoticeFile)
	if err != nil {
		if os.IsNotExist(err) {
			return ctx.JSON(http.StatusOK, echo.Map{"success": true, "notice": ""})
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "notice": string(raw)})
}
