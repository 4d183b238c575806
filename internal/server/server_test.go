package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-atomic/internal/config"
	"github.com/goliatone/go-atomic/internal/polls"
	"github.com/goliatone/go-atomic/pkg/tags"
)

const testToken = "test-csrf-token"

type fixture struct {
	handler http.Handler
	store   *polls.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	store, err := polls.Open(ctx, "file:"+filepath.Join(t.TempDir(), "polls.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(ctx))

	srv, err := New(config.Default(), store)
	require.NoError(t, err)
	return fixture{handler: srv.Handler(), store: store}
}

func (f fixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f fixture) post(path string, values url.Values) *httptest.ResponseRecorder {
	values.Set(csrfField, testToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: csrfField, Value: testToken})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexListsLatestQuestions(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<a href="/polls/1/">What&#39;s new?</a>`)
	assert.Contains(t, body, `<h1 class="atomic-title atomic-title--size-1 atomic-title--default">Latest polls</h1>`)
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/css/atoms/title.css">`)
	assert.NotContains(t, body, "input_password.js")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestDetailAndMissingQuestion(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/polls/1/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="choice" id="choice1" value="1"`)
	assert.Contains(t, rec.Body.String(), `name="_csrf" value="`)

	rec = f.get("/polls/999/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Question not found")

	rec = f.get("/polls/abc/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrailingSlashRedirect(t *testing.T) {
	f := newFixture(t)
	rec := f.get("/polls/1")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/polls/1/", rec.Header().Get(echo.HeaderLocation))
}

func TestVoteWithoutChoiceRerendersDetail(t *testing.T) {
	f := newFixture(t)

	rec := f.post("/polls/1/vote/", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "select a choice.")
	assert.Contains(t, rec.Body.String(), "atomic-text--error")

	rec = f.post("/polls/1/vote/", url.Values{"choice": {"999"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "select a choice.")
}

func TestVoteIncrementsAndRedirects(t *testing.T) {
	f := newFixture(t)

	rec := f.post("/polls/1/vote/", url.Values{"choice": {"2"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/polls/1/results/", rec.Header().Get(echo.HeaderLocation))

	choices, err := f.store.Choices(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, []int{choices[0].Votes, choices[1].Votes, choices[2].Votes})

	rec = f.get("/polls/1/results/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The sky -- 1 vote<")
	assert.Contains(t, rec.Body.String(), "Not much -- 0 votes<")
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/polls/1/vote/", strings.NewReader("choice=1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContactFormFlow(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/contact/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="subject"`)
	assert.Contains(t, rec.Body.String(), `/static/js/molecules/base_input.js`)

	rec = f.post("/contact/", url.Values{"subject": {"Hi"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")

	rec = f.post("/contact/", url.Values{
		"subject":          {"Hi"},
		"message":          {"Hello there"},
		"sender":           {"ada@example.com"},
		"birth_year_year":  {"1981"},
		"birth_year_month": {"2"},
		"birth_year_day":   {"3"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/thanks/", rec.Header().Get(echo.HeaderLocation))

	rec = f.get("/thanks/", rec.Result().Cookies()...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thanks, your message was sent.")
}

func TestNameFormRendersPasswordWidget(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/name/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "bi bi-alarm-fill")
	assert.Contains(t, body, `type="password" name="test" required`)
	assert.Contains(t, body, `/static/js/molecules/input_password.js`)
}

func TestGalleryRendersEveryComponent(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/components/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, kind := range tags.Kinds() {
		assert.Contains(t, body, `id="`+kind+`"`, kind)
	}
	assert.Contains(t, body, `<script src="/static/js/molecules/input_number.js"></script>`)
}

func TestStaticAssetsAreServed(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/static/js/molecules/input_password.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "function toggleRightIcon")
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(config.Default(), nil)
	assert.Error(t, err)
}
