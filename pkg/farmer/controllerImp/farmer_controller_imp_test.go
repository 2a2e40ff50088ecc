package controllerImp

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrosmart/database/dbtest"
	"agrosmart/entities"
	"agrosmart/pkg/advisory"
	"agrosmart/pkg/farmer/repository"
	"agrosmart/pkg/farmer/repositoryImp"
	"agrosmart/pkg/farmer/serviceImp"
	locRepo "agrosmart/pkg/location/repositoryImp"
	locSvc "agrosmart/pkg/location/serviceImp"
	"agrosmart/pkg/upload"
	"agrosmart/pkg/web"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := dbtest.New(t)
	store, err := upload.NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	advisor := advisory.NewTable(advisory.DefaultWindows(), nil, zap.NewNop())
	svc := serviceImp.NewFarmerService(repositoryImp.New(db), store, advisor, zap.NewNop())
	locs := locSvc.NewLocationService(locRepo.New(db), time.Minute)
	h := New(svc, locs, advisor, zap.NewNop())

	e := echo.New()
	r, err := web.NewRenderer()
	require.NoError(t, err)
	e.Renderer = r
	e.GET("/", h.Home)
	e.GET("/register", h.RegisterForm)
	e.POST("/register", h.Register)
	e.GET("/dashboard", h.Dashboard)
	e.GET("/admin", h.Admin)
	e.GET("/lga/:state/:lga", h.LGA)
	e.GET("/api/farmers", h.List)
	return e
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, v url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(v.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return do(e, req)
}

func farmerForm(name, state, lga, crop string) url.Values {
	return url.Values{"name": {name}, "state": {state}, "lga": {lga}, "crop": {crop}, "phone": {"0803"}}
}

func TestRegisterMissingFieldIs400(t *testing.T) {
	e := newServer(t)
	v := farmerForm("Amina", "Kano", "Fagge", "Millet")
	v.Del("phone")

	rec := postForm(e, v)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Phone", doc.Find("#form-error strong").Text())
	assert.Equal(t, "Amina", doc.Find("input#name").AttrOr("value", ""))
	assert.Equal(t, "Kano", doc.Find("select#state option[selected]").AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find("#form-error").Length())
}

func TestRegisterFormHasNoError(t *testing.T) {
	e := newServer(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/register", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("#form-error").Length())
	assert.Equal(t, 0, doc.Find("select#state option[selected]").Length())
}

func TestRegisterMultipartRedirects(t *testing.T) {
	e := newServer(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, vs := range farmerForm("Amina", "Kano", "Fagge", "Millet") {
		require.NoError(t, w.WriteField(k, vs[0]))
	}
	part, err := w.CreateFormFile("photo", "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/register", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := do(e, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	rec = do(e, httptest.NewRequest(http.MethodGet, "/api/farmers", nil))
	var got struct {
		Farmers []entities.Farmer `json:"farmers"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1, got.Count)
	assert.True(t, strings.HasSuffix(got.Farmers[0].PhotoPath, "-me.png"))
}

func TestDashboardFiltersByState(t *testing.T) {
	e := newServer(t)
	for _, v := range []url.Values{
		farmerForm("Amina", "Kano", "Fagge", "Millet"),
		farmerForm("Chinedu", "Abia", "Aba North", "Cassava"),
		farmerForm("Musa", "Kano", "Gwale", "Maize"),
	} {
		require.Equal(t, http.StatusSeeOther, postForm(e, v).Code)
	}

	rec := do(e, httptest.NewRequest(http.MethodGet, "/dashboard?state=Kano", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	rows := doc.Find("#farmersTable tbody tr")
	require.Equal(t, 2, rows.Length())
	rows.Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, "Kano", s.Find("td").Eq(2).Text())
	})
	assert.Equal(t, "Kano", doc.Find("select[name=state] option[selected]").AttrOr("value", ""))
	assert.Equal(t, 2, doc.Find("#crop-advice li").Length())
	assert.Equal(t, "/download?state=Kano", doc.Find("#download-csv").AttrOr("href", ""))
	assert.Equal(t, "/download?format=pdf&state=Kano", doc.Find("#download-pdf").AttrOr("href", ""))
	assert.Contains(t, doc.Find("#total").Parent().Text(), "Matching farmers")
}

func TestDashboardWithoutFilterShowsRecent(t *testing.T) {
	e := newServer(t)
	for i := 0; i < recentRows+3; i++ {
		require.Equal(t, http.StatusSeeOther, postForm(e, farmerForm("Farmer", "Kano", "Fagge", "Millet")).Code)
	}

	rec := do(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, recentRows, doc.Find("#farmersTable tbody tr").Length())
	assert.Equal(t, "/download", doc.Find("#download-csv").AttrOr("href", ""))
	assert.Equal(t, "/download?format=xlsx", doc.Find("#download-xlsx").AttrOr("href", ""))

	rec = do(e, httptest.NewRequest(http.MethodGet, "/api/farmers", nil))
	var got struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, recentRows+3, got.Count)
}

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		f      repository.Filter
		format string
		want   string
	}{
		{repository.Filter{}, "", "/download"},
		{repository.Filter{State: "Akwa Ibom", LGA: "Urue-Offong/Oruko"}, "", "/download?lga=Urue-Offong%2FOruko&state=Akwa+Ibom"},
		{repository.Filter{Query: "ma", Crop: "maize"}, "xlsx", "/download?crop=maize&format=xlsx&q=ma"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, downloadURL(tt.f, tt.format))
	}
}

func TestLGAPage(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusSeeOther, postForm(e, farmerForm("Chinedu", "Abia", "Aba North", "Cassava")).Code)
	require.Equal(t, http.StatusSeeOther, postForm(e, farmerForm("Ada", "Abia", "Aba South", "Yam")).Code)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/lga/Abia/Aba%20North", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#farmersTable tbody tr").Length())
	assert.Contains(t, doc.Find("h2").Text(), "Aba North")
}

func TestAdminHausa(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusSeeOther, postForm(e, farmerForm("Amina", "Kano", "Fagge", "Millet")).Code)

	e.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(web.LangKey, web.LangHausa)
			return next(c)
		}
	})
	rec := do(e, httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "Dashbod ɗin Admin", doc.Find("h2").Text())
	assert.Equal(t, "Suna", doc.Find("#farmersTable th").Eq(1).Text())
	assert.Equal(t, 1, doc.Find("#farmersTable tbody tr").Length())
}

func TestHomeShowsIndicator(t *testing.T) {
	e := newServer(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("#indicator").Length())
	assert.NotEqual(t, "Unknown", doc.Find("#indicator .condition").Text())
	assert.NotEmpty(t, doc.Find("#indicator .seed").Text())
	assert.NotEqual(t, "Unknown", doc.Find("#indicator .flood-risk").Text())
}
