package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/dtroode/archia-server/internal/api/http/context"
	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/metrics"
	"github.com/dtroode/archia-server/internal/mocks"
	"github.com/dtroode/archia-server/internal/model"
	"github.com/dtroode/archia-server/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "missing", header: "", want: ""},
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "prefix only", header: "Bearer ", want: ""},
		{name: "basic scheme", header: "Basic dXNlcjpwdw==", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(r))
		})
	}
}

// sessionEcho reports the session the middleware attached.
func sessionEcho(cm *httpctx.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cm.GetSessionFromContext(c.Request.Context())
		username, _ := session.CurrentUser()
		c.JSON(http.StatusOK, gin.H{"attached": ok, "logged_in": session.IsLoggedIn(), "username": username})
	}
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		session    model.Session
		resolveErr error
		resolves   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no token",
			wantStatus: http.StatusOK,
			wantBody:   `{"attached":true,"logged_in":false,"username":""}`,
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			session:    model.NewLoggedInSession(uuid.New(), uuid.New(), "bob"),
			resolves:   true,
			wantStatus: http.StatusOK,
			wantBody:   `{"attached":true,"logged_in":true,"username":"bob"}`,
		},
		{
			name:       "rejected token",
			header:     "Bearer stale",
			resolveErr: model.ErrUnauthenticated,
			resolves:   true,
			wantStatus: http.StatusOK,
			wantBody:   `{"attached":true,"logged_in":false,"username":""}`,
		},
		{
			name:       "storage down",
			header:     "Bearer good",
			resolveErr: model.ErrStorageUnavailable,
			resolves:   true,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"service temporarily unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := mocks.NewSessionResolver(t)
			if tt.resolves {
				resolver.On("Resolve", mock.Anything, BearerToken(headerRequest(tt.header))).
					Return(tt.session, tt.resolveErr).Once()
			}

			cm := httpctx.NewManager()
			auth := NewAuthenticate(resolver, cm, testutil.MakeNoopLogger())

			e := gin.New()
			e.GET("/", auth.Handle(), sessionEcho(cm))

			w := httptest.NewRecorder()
			e.ServeHTTP(w, headerRequest(tt.header))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAuthenticate_RequireSession(t *testing.T) {
	t.Parallel()

	resolver := mocks.NewSessionResolver(t)
	resolver.On("Resolve", mock.Anything, "good").
		Return(model.NewLoggedInSession(uuid.New(), uuid.New(), "bob"), nil).Once()

	cm := httpctx.NewManager()
	auth := NewAuthenticate(resolver, cm, testutil.MakeNoopLogger())

	e := gin.New()
	e.POST("/logout", auth.Handle(), auth.RequireSession(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLogging_Handle(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithFormat(0, "json", &buf))

	e := gin.New()
	e.Use(lg.Handle())
	e.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	e.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Contains(t, buf.String(), `"msg":"HTTP request completed"`)
	assert.Contains(t, buf.String(), `"path":"/ok"`)

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestMetrics_Handle(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	e := gin.New()
	e.Use(NewMetrics(m).Handle())
	e.GET("/stories/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stories/1", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stories/2", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, promtest.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/stories/:id", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func headerRequest(header string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}
