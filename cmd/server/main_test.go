package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"agrosmart/config"
	"agrosmart/database/dbtest"
	"agrosmart/entities"
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	return testServerMode(t, "random")
}

func testServerMode(t *testing.T, advisoryMode string) *echo.Echo {
	t.Helper()
	cfg := config.AppConfig{
		Port:            "0",
		DBDriver:        "sqlite",
		UploadDir:       filepath.Join(t.TempDir(), "uploads"),
		MaxUploadMB:     1,
		DefaultLang:     "en",
		AdvisoryMode:    advisoryMode,
		CatalogCacheTTL: time.Minute,
	}
	e, err := buildServer(cfg, dbtest.New(t), zap.NewNop())
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUploadedPhotoIsServedByteIdentical(t *testing.T) {
	e := testServer(t)
	photo := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0xff, 0x10}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range map[string]string{"name": "Amina", "state": "Kano", "lga": "Fagge", "crop": "Millet", "phone": "0803"} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("photo", "amina.png")
	require.NoError(t, err)
	_, err = part.Write(photo)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := do(e, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = do(e, httptest.NewRequest(http.MethodGet, "/api/farmers?state=Kano", nil))
	var list struct {
		Farmers []entities.Farmer `json:"farmers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Farmers, 1)
	f := list.Farmers[0]
	require.NotEmpty(t, f.PhotoPath)
	assert.Empty(t, f.FarmPhotoPath)
	assert.Contains(t, []string{"Low", "Medium", "High"}, f.FloodRisk)

	rec = do(e, httptest.NewRequest(http.MethodGet, "/uploads/"+f.PhotoPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, photo, rec.Body.Bytes())
}

func TestRegisterPageListsAllStates(t *testing.T) {
	e := testServer(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/form?lang=ha", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 38, doc.Find("select#state option").Length())
	assert.Equal(t, "Suna", doc.Find("label[for=name]").Text())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "ha", cookies[0].Value)
}

func TestAPIAndOpsRoutes(t *testing.T) {
	e := testServer(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/api/lgas?state=Lagos", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var lgas map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lgas))
	assert.Len(t, lgas["lgas"], 20)

	rec = do(e, httptest.NewRequest(http.MethodGet, "/api/lgas?state=Nowhere", nil))
	assert.JSONEq(t, `{"lgas":[]}`, rec.Body.String())

	rec = do(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "agrosmart_http_requests_total")

	for _, p := range []string{"/", "/dashboard", "/admin", "/map", "/add_weather", "/download"} {
		rec = do(e, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusOK, rec.Code, p)
	}
}

func register(t *testing.T, e *echo.Echo, name, state, lga, crop string) {
	t.Helper()
	v := url.Values{"name": {name}, "state": {state}, "lga": {lga}, "crop": {crop}, "phone": {"0803"}}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(v.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	require.Equal(t, http.StatusSeeOther, do(e, req).Code)
}

func TestSlashLGAExportsFromDashboard(t *testing.T) {
	e := testServer(t)
	register(t, e, "Ekaette", "Akwa Ibom", "Urue-Offong/Oruko", "Cassava")
	register(t, e, "Udo", "Akwa Ibom", "Uyo", "Yam")

	rec := do(e, httptest.NewRequest(http.MethodGet, "/dashboard?state=Akwa+Ibom&lga=Urue-Offong%2FOruko", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#farmersTable tbody tr").Length())
	lgaHref := doc.Find("#farmersTable td a").First().AttrOr("href", "")
	assert.Equal(t, "/lga/Akwa%20Ibom/Urue-Offong%2FOruko", lgaHref)

	rec = do(e, httptest.NewRequest(http.MethodGet, doc.Find("#download-csv").AttrOr("href", ""), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ekaette", rows[1][1])
	assert.Equal(t, "Urue-Offong/Oruko", rows[1][3])

	rec = do(e, httptest.NewRequest(http.MethodGet, doc.Find("#download-xlsx").AttrOr("href", ""), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	x, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer x.Close()
	sheetRows, err := x.GetRows("farmers")
	require.NoError(t, err)
	require.Len(t, sheetRows, 2)
	assert.Equal(t, "Ekaette", sheetRows[1][1])

	rec = do(e, httptest.NewRequest(http.MethodGet, doc.Find("#download-pdf").AttrOr("href", ""), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))

	// escaped path segments reach the LGA page and the path-style export
	rec = do(e, httptest.NewRequest(http.MethodGet, lgaHref, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ekaette")
	assert.NotContains(t, rec.Body.String(), "Udo")

	rec = do(e, httptest.NewRequest(http.MethodGet, "/download/lga/Akwa%20Ibom/Urue-Offong%2FOruko", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err = csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ekaette", rows[1][1])
}

func TestDashboardDownloadKeepsSearchFilters(t *testing.T) {
	e := testServer(t)
	register(t, e, "Amina", "Kano", "Fagge", "Millet")
	register(t, e, "Musa", "Kano", "Gwale", "Maize")
	register(t, e, "Ada", "Abia", "Aba North", "Maize")

	rec := do(e, httptest.NewRequest(http.MethodGet, "/dashboard?q=mai&crop=maize&state=Kano", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	href := doc.Find("#download-csv").AttrOr("href", "")

	rec = do(e, httptest.NewRequest(http.MethodGet, href, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Musa", rows[1][1])
}

func TestHomeIndicatorInTableMode(t *testing.T) {
	e := testServerMode(t, "table")

	rec := do(e, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, []string{"Dry", "Rainy", "Heavy Rain"}, doc.Find("#indicator .condition").Text())
	assert.NotEmpty(t, doc.Find("#indicator .seed").Text())
	assert.Contains(t, []string{"Low", "Medium", "High"}, doc.Find("#indicator .flood-risk").Text())
}
