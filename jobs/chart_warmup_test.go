package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/svgchart/internal/chart"
	jobmetrics "github.com/odyssey-erp/svgchart/internal/jobs"
	"github.com/odyssey-erp/svgchart/internal/render"
)

func lineRequest() render.Request {
	return render.Request{
		Kind: chart.KindLine,
		Data: chart.MultiSeries(
			chart.Series{Name: "zeta", Points: []chart.Item{{Label: "q2", Value: 4}, {Label: "q1", Value: 2}}},
			chart.Series{Name: "alpha", Points: []chart.Item{{Label: "q2", Value: 1}, {Label: "q1", Value: 3}}},
		),
		Options: chart.Options{BannerInfo: chart.Bool(false)},
	}
}

func TestChartWarmupTaskRoundTrip(t *testing.T) {
	req := lineRequest()
	task, id, err := NewChartWarmupTask(req)
	require.NoError(t, err)
	assert.Equal(t, TaskChartWarmup, task.Type())

	decoded, err := DecodeChartWarmup(task)
	require.NoError(t, err)
	assert.Equal(t, req.Kind, decoded.Kind)
	assert.Equal(t, []string{"q2", "q1"}, decoded.Data.Labels())
	assert.Equal(t, "zeta", decoded.Data.Series[0].Name)
	assert.False(t, *decoded.Options.BannerInfo)

	wantID, err := render.ChartID(req)
	require.NoError(t, err)
	gotID, err := render.ChartID(decoded)
	require.NoError(t, err)
	assert.Equal(t, wantID, gotID)
	assert.Equal(t, wantID.String(), id)
}

func TestChartWarmupTaskKeepsEmptyLegend(t *testing.T) {
	req := lineRequest()
	req.Options.BannerInfo = nil
	req.Options.Legend = []string{}

	task, id, err := NewChartWarmupTask(req)
	require.NoError(t, err)
	decoded, err := DecodeChartWarmup(task)
	require.NoError(t, err)
	require.NotNil(t, decoded.Options.Legend)
	assert.Empty(t, decoded.Options.Legend)

	gotID, err := render.ChartID(decoded)
	require.NoError(t, err)
	assert.Equal(t, id, gotID.String())

	want, err := chart.Render(req.Kind, req.Data, req.Options)
	require.NoError(t, err)
	got, err := chart.Render(decoded.Kind, decoded.Data, decoded.Options)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NotContains(t, got, ">zeta</text>")

	all := lineRequest()
	all.Options.BannerInfo = nil
	allTask, allID, err := NewChartWarmupTask(all)
	require.NoError(t, err)
	assert.NotEqual(t, id, allID)
	decodedAll, err := DecodeChartWarmup(allTask)
	require.NoError(t, err)
	assert.Nil(t, decodedAll.Options.Legend)
	withLegend, err := chart.Render(decodedAll.Kind, decodedAll.Data, decodedAll.Options)
	require.NoError(t, err)
	assert.Contains(t, withLegend, ">zeta</text>")
}

func newWarmupJob(t *testing.T) (*ChartWarmupJob, *render.Service) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := render.NewService(render.NewCache(client, time.Minute), nil, nil)
	return NewChartWarmupJob(svc, nil, jobmetrics.NewMetrics(prometheus.NewRegistry())), svc
}

func TestChartWarmupPopulatesCache(t *testing.T) {
	job, svc := newWarmupJob(t)
	task, _, err := NewChartWarmupTask(lineRequest())
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))

	res, err := svc.Render(context.Background(), lineRequest())
	require.NoError(t, err)
	assert.True(t, res.Cached)
}

func TestChartWarmupSkipsRetryForBadPayloads(t *testing.T) {
	job, _ := newWarmupJob(t)

	err := job.Handle(context.Background(), asynq.NewTask(TaskChartWarmup, []byte("kind: [")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	invalid := lineRequest()
	invalid.Options.Colors = []string{"red"}
	task, _, err := NewChartWarmupTask(invalid)
	require.NoError(t, err)
	err = job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

type flakyRenderer struct{ err error }

func (f flakyRenderer) Render(ctx context.Context, req render.Request) (render.Result, error) {
	return render.Result{}, f.err
}

func TestChartWarmupRetriesTransientErrors(t *testing.T) {
	boom := errors.New("redis timeout")
	job := NewChartWarmupJob(flakyRenderer{err: boom}, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, _, err := NewChartWarmupTask(lineRequest())
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestChartWarmupRequiresRenderer(t *testing.T) {
	var job *ChartWarmupJob
	assert.Error(t, job.Handle(context.Background(), asynq.NewTask(TaskChartWarmup, nil)))
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(queue string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func TestJobsHealth(t *testing.T) {
	serve := func(h *Handler) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		h.MountRoutes(r)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rr
	}

	rr := serve(NewHandler(stubInspector{info: &asynq.QueueInfo{Queue: QueueDefault, Pending: 3, Retry: 1}}, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var health queueHealth
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, queueHealth{Queue: QueueDefault, Pending: 3, Retry: 1}, health)

	rr = serve(NewHandler(stubInspector{err: errors.New("down")}, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = serve(NewHandler(nil, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewWorkerRequiresHandlers(t *testing.T) {
	_, err := NewWorker(WorkerConfig{RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"}})
	assert.Error(t, err)
}
