package export

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrosmart/pkg/farmer/repository"
	"agrosmart/pkg/farmer/service"
	"agrosmart/pkg/metrics"
	"agrosmart/pkg/web"
)

type Controller struct {
	farmers service.FarmerService
	log     *zap.Logger
	now     func() time.Time
}

func NewController(farmers service.FarmerService, log *zap.Logger) *Controller {
	return &Controller{farmers: farmers, log: log, now: time.Now}
}

// All serves GET /download and /download/all. The dashboard query filters
// (state, lga, q, crop) are honoured when present.
func (h *Controller) All(c echo.Context) error {
	var f repository.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad filter"})
	}
	scope := "all"
	switch {
	case f.State != "" && f.LGA != "":
		scope = f.State + "_" + f.LGA
	case f.State != "":
		scope = f.State
	}
	return h.send(c, scope, f)
}

func (h *Controller) ByState(c echo.Context) error {
	state := web.PathParam(c, "state")
	return h.send(c, state, repository.Filter{State: state})
}

func (h *Controller) ByLGA(c echo.Context) error {
	state, lga := web.PathParam(c, "state"), web.PathParam(c, "lga")
	return h.send(c, state+"_"+lga, repository.Filter{State: state, LGA: lga})
}

func (h *Controller) send(c echo.Context, scope string, f repository.Filter) error {
	format := c.QueryParam("format")
	switch format {
	case "", FormatCSV, FormatXLSX, FormatPDF:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("unsupported format %q", format)})
	}

	farmers, err := h.farmers.List(c.Request().Context(), f)
	if err != nil {
		h.log.Error("export list", zap.String("scope", scope), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load farmers"})
	}
	file, err := Build(format, scope, farmers, h.now())
	if err != nil {
		h.log.Error("export build", zap.String("format", format), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build export"})
	}
	metrics.IncExport(formatLabel(format))
	h.log.Info("export served", zap.String("file", file.Name), zap.Int("rows", len(farmers)))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Name))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(len(file.Body)))
	return c.Blob(http.StatusOK, file.ContentType, file.Body)
}

func formatLabel(format string) string {
	if format == "" {
		return FormatCSV
	}
	return format
}
