package controllerImp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db        *gorm.DB
	uploadDir string
}

func NewHealthCtrl(db *gorm.DB, uploadDir string) *HealthCtrl {
	return &HealthCtrl{db: db, uploadDir: uploadDir}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.checkDB(ctx)
	uploads := h.checkUploads()

	status := http.StatusOK
	if !db.OK || !uploads.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": status == http.StatusOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": echo.Map{
			"database": db,
			"uploads":  uploads,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) checkDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// checkUploads confirms the upload dir exists and accepts new files.
func (h *HealthCtrl) checkUploads() check {
	info, err := os.Stat(h.uploadDir)
	if err != nil {
		return check{Err: err.Error()}
	}
	if !info.IsDir() {
		return check{Err: h.uploadDir + " is not a directory"}
	}
	f, err := os.CreateTemp(h.uploadDir, ".health-*")
	if err != nil {
		return check{Err: "not writable: " + err.Error()}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return check{OK: true}
}
