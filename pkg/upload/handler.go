package upload

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Serve handles GET /uploads/:filename. There is no access control; anyone
// who knows a stored name can fetch the file.
func (s *Store) Serve(c echo.Context) error {
	f, err := s.Open(c.Param("filename"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, fs.ErrNotExist):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not open file"})
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
	}
	http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
	return nil
}
