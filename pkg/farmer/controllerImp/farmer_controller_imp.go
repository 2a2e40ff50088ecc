package controllerImp

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrosmart/entities"
	"agrosmart/pkg/advisory"
	"agrosmart/pkg/farmer/repository"
	"agrosmart/pkg/farmer/service"
	locsvc "agrosmart/pkg/location/service"
	"agrosmart/pkg/web"
)

const (
	adviceLines = 5
	recentRows  = 20
)

type FarmerCtrl struct {
	svc     service.FarmerService
	locs    locsvc.LocationService
	advisor advisory.Provider
	log     *zap.Logger
}

func New(svc service.FarmerService, locs locsvc.LocationService, advisor advisory.Provider, log *zap.Logger) *FarmerCtrl {
	return &FarmerCtrl{svc: svc, locs: locs, advisor: advisor, log: log}
}

func (h *FarmerCtrl) Home(c echo.Context) error {
	data := echo.Map{}
	if h.advisor != nil {
		data["Advice"] = h.advisor.Advise(c.Request().Context(), advisory.Query{})
	}
	return web.Render(c, http.StatusOK, "home.html", data)
}

func (h *FarmerCtrl) RegisterForm(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, service.RegistrationInput{}, "")
}

// renderForm shows the registration form, refilled with in and naming the
// missing field when there is one.
func (h *FarmerCtrl) renderForm(c echo.Context, status int, in service.RegistrationInput, missing string) error {
	states, err := h.locs.States(c.Request().Context())
	if err != nil {
		h.log.Error("list states", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load states")
	}
	return web.Render(c, status, "register.html", echo.Map{"States": states, "Form": in, "Missing": missing})
}

func (h *FarmerCtrl) Register(c echo.Context) error {
	in := service.RegistrationInput{
		Name:     c.FormValue("name"),
		State:    c.FormValue("state"),
		LGA:      c.FormValue("lga"),
		Location: c.FormValue("location"),
		Crop:     c.FormValue("crop"),
		Phone:    c.FormValue("phone"),
	}
	photos := service.Photos{Photo: formFile(c, "photo"), FarmPhoto: formFile(c, "farm_photo")}

	f, err := h.svc.Register(c.Request().Context(), in, photos)
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			return h.renderForm(c, http.StatusBadRequest, in, fe.Field)
		}
		h.log.Error("register farmer", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not save registration")
	}
	h.log.Info("farmer registered",
		zap.Uint("id", f.ID),
		zap.String("state", f.State),
		zap.String("lga", f.LGA),
		zap.Bool("photo", f.PhotoPath != ""),
		zap.Bool("farm_photo", f.FarmPhotoPath != ""))
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// formFile returns nil when the field is absent or the body is not multipart.
func formFile(c echo.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh.Filename == "" {
		return nil
	}
	return fh
}

func (h *FarmerCtrl) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	var f repository.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return web.Error(c, http.StatusBadRequest, "bad filter")
	}

	var farmers []entities.Farmer
	var err error
	if f.IsZero() {
		farmers, err = h.svc.Recent(ctx, recentRows)
	} else {
		farmers, err = h.svc.List(ctx, f)
	}
	if err != nil {
		h.log.Error("list farmers", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load farmers")
	}
	counts, err := h.svc.StateCounts(ctx)
	if err != nil {
		h.log.Error("count farmers", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load farmers")
	}
	states, err := h.locs.States(ctx)
	if err != nil {
		h.log.Error("list states", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load states")
	}

	return web.Render(c, http.StatusOK, "dashboard.html", echo.Map{
		"Filter":   f,
		"Filtered": !f.IsZero(),
		"Farmers":  farmers,
		"Counts":   counts,
		"States":   states,
		"Advice":   h.svc.CropAdvice(ctx, farmers, adviceLines),
		"Downloads": map[string]string{
			"csv":  downloadURL(f, ""),
			"xlsx": downloadURL(f, "xlsx"),
			"pdf":  downloadURL(f, "pdf"),
		},
	})
}

// downloadURL carries every dashboard filter to /download as query parameters.
func downloadURL(f repository.Filter, format string) string {
	v := url.Values{}
	for k, s := range map[string]string{"state": f.State, "lga": f.LGA, "q": f.Query, "crop": f.Crop, "format": format} {
		if s != "" {
			v.Set(k, s)
		}
	}
	if len(v) == 0 {
		return "/download"
	}
	return "/download?" + v.Encode()
}

func (h *FarmerCtrl) Admin(c echo.Context) error {
	farmers, err := h.svc.List(c.Request().Context(), repository.Filter{})
	if err != nil {
		h.log.Error("list farmers", zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load farmers")
	}
	return web.Render(c, http.StatusOK, "admin.html", echo.Map{"Farmers": farmers})
}

func (h *FarmerCtrl) LGA(c echo.Context) error {
	state, lga := web.PathParam(c, "state"), web.PathParam(c, "lga")
	farmers, err := h.svc.List(c.Request().Context(), repository.Filter{State: state, LGA: lga})
	if err != nil {
		h.log.Error("list farmers", zap.String("state", state), zap.String("lga", lga), zap.Error(err))
		return web.Error(c, http.StatusInternalServerError, "could not load farmers")
	}
	return web.Render(c, http.StatusOK, "lga.html", echo.Map{"State": state, "LGA": lga, "Farmers": farmers})
}

// List serves GET /api/farmers with the dashboard filters.
func (h *FarmerCtrl) List(c echo.Context) error {
	var f repository.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad filter"})
	}
	farmers, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		h.log.Error("list farmers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load farmers"})
	}
	return c.JSON(http.StatusOK, echo.Map{"farmers": farmers, "count": len(farmers)})
}
