package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollector_CacheAndCommands(t *testing.T) {
	c := NewCollector("test")

	c.CacheHit("projects")
	c.CacheHit("projects")
	c.CacheMiss("projects")
	c.RecordCommand(context.Background(), "project.create", 10*time.Millisecond, nil)
	c.RecordCommand(context.Background(), "project.create", time.Millisecond, errors.New("x"))

	assert.Equal(t, float64(2), testutil.ToFloat64(c.CacheHits.WithLabelValues("projects")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.CacheMisses.WithLabelValues("projects")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Commands.WithLabelValues("project.create", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Commands.WithLabelValues("project.create", "failure")))
}

func TestCollector_MiddlewareUsesRoutePattern(t *testing.T) {
	// Arrange
	c := NewCollector("test")
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/metrics", c.Handler().ServeHTTP)

	// Act
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/7", nil))

	// Assert
	assert.Equal(t, float64(1), testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/projects/{id}", "404")))

	metrics := httptest.NewRecorder()
	r.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_http_requests_total")
}

type MockCloudWatch struct {
	mock.Mock
}

func (m *MockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, in)
	return &cloudwatch.PutMetricDataOutput{}, args.Error(0)
}

func TestMetrics_RecordCommand(t *testing.T) {
	client := &MockCloudWatch{}
	client.On("PutMetricData", mock.Anything, mock.Anything).Return(nil)
	m := NewMetrics("Portfolio/test", client, zap.NewNop())

	m.RecordCommand(context.Background(), "testimonial.delete", 5*time.Millisecond, nil)

	client.AssertNumberOfCalls(t, "PutMetricData", 1)
	in := client.Calls[0].Arguments.Get(1).(*cloudwatch.PutMetricDataInput)
	assert.Equal(t, "Portfolio/test", aws.ToString(in.Namespace))
	require.Len(t, in.MetricData, 2)
	assert.Equal(t, "CommandExecution", aws.ToString(in.MetricData[0].MetricName))
}

func TestMetrics_NilClientAndErrors(t *testing.T) {
	NewMetrics("ns", nil, zap.NewNop()).RecordCommand(context.Background(), "x", 0, nil)

	var nilMetrics *Metrics
	nilMetrics.RecordCommand(context.Background(), "x", 0, nil)

	client := &MockCloudWatch{}
	client.On("PutMetricData", mock.Anything, mock.Anything).Return(errors.New("throttled"))
	NewMetrics("ns", client, zap.NewNop()).RecordCommand(context.Background(), "x", 0, nil)
	client.AssertNumberOfCalls(t, "PutMetricData", 1)
}

func TestMultiRecorder(t *testing.T) {
	a, b := NewCollector("a"), NewCollector("b")
	multi := MultiRecorder{a, nil, b}

	multi.RecordCommand(context.Background(), "project.update", time.Millisecond, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(a.Commands.WithLabelValues("project.update", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(b.Commands.WithLabelValues("project.update", "success")))
}
