package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/toomate/cashier/pkg/logctx"
)

func newTestEngine(base *zap.SugaredLogger, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(base), AccessLogMiddleware(base))
	r.GET("/x/:id", h)
	return r
}

func TestMiddleware_PropagatesClientTraceID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var ctxTrace string
	r := newTestEngine(zap.New(core).Sugar(), func(c *gin.Context) {
		ctxTrace = logctx.TraceID(c.Request.Context())
		logctx.FromCtx(c.Request.Context(), zap.NewNop().Sugar()).Infow("inside")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x/1", nil)
	req.Header.Set(RequestIDHeader, "client-trace")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "client-trace", w.Header().Get(RequestIDHeader))
	require.Equal(t, "client-trace", ctxTrace)

	inside := logs.FilterMessage("inside").All()
	require.Len(t, inside, 1)
	require.Equal(t, "client-trace", inside[0].ContextMap()["trace_id"])

	access := logs.FilterMessage("http_access").All()
	require.Len(t, access, 1)
	require.Equal(t, "/x/:id", access[0].ContextMap()["path"])
	require.EqualValues(t, http.StatusNoContent, access[0].ContextMap()["status"])
}

func TestMiddleware_GeneratesTraceID(t *testing.T) {
	r := newTestEngine(zap.NewNop().Sugar(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x/1", nil))
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAccessLog_ServerErrorsAtWarn(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newTestEngine(zap.New(core).Sugar(), func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x/1", nil))
	access := logs.FilterMessage("http_access").All()
	require.Len(t, access, 1)
	require.Equal(t, zapcore.WarnLevel, access[0].Level)
}
