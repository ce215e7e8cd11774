package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTracedRouter wires a real tracer provider so traced requests carry
// a traceparent response header, which is how the tests tell traced and
// skipped endpoints apart.
func newTracedRouter(t *testing.T) *gin.Engine {
	t.Helper()

	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(GinMiddleware("tilefetch-test"))
	engine.GET("/api/v1/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/api/v1/tile/:z/:x/:y", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func TestGinMiddlewareSkipsHealthEndpoint(t *testing.T) {
	engine := newTracedRouter(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Traceparent"))
}

func TestGinMiddlewareTracesTileRequests(t *testing.T) {
	engine := newTracedRouter(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tile/1/0/0", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Traceparent"))
}
