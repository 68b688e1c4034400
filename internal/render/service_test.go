package render

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/svgchart/internal/chart"
)

type stubRecorder struct {
	mu       sync.Mutex
	renders  map[string]int
	failures map[string]int
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{renders: map[string]int{}, failures: map[string]int{}}
}

func (r *stubRecorder) ObserveRender(kind, cache string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders[kind+":"+cache]++
}

func (r *stubRecorder) RenderFailed(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[kind]++
}

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis, *stubRecorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	recorder := newStubRecorder()
	return NewService(NewCache(client, time.Minute), recorder, nil), mr, recorder
}

func barRequest() Request {
	return Request{
		Kind: chart.KindBar,
		Data: chart.Categorical(chart.Item{Label: "a", Value: 10}, chart.Item{Label: "b", Value: 20}),
	}
}

func TestRenderCachesMarkup(t *testing.T) {
	svc, mr, recorder := newTestService(t)
	ctx := context.Background()
	req := barRequest()

	want, err := chart.Render(req.Kind, req.Data, req.Options)
	require.NoError(t, err)

	first, err := svc.Render(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, want, first.Markup)

	second, err := svc.Render(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, want, second.Markup)
	assert.Equal(t, first.ID, second.ID)

	key := "svgchart:render:bar:" + first.ID.String() + ":1"
	mr.CheckGet(t, key, want)
	assert.Equal(t, time.Minute, mr.TTL(key))
	assert.Equal(t, 1, recorder.renders["bar:miss"])
	assert.Equal(t, 1, recorder.renders["bar:hit"])
}

func TestRenderRejectsInvalidRequestsBeforeRedis(t *testing.T) {
	svc, mr, recorder := newTestService(t)

	_, err := svc.Render(context.Background(), Request{Kind: chart.KindPie, Data: chart.Categorical()})
	require.ErrorIs(t, err, chart.ErrEmptyDataset)
	assert.Empty(t, mr.Keys())
	assert.Equal(t, 1, recorder.failures["pie"])

	_, err = svc.Render(context.Background(), Request{Kind: "gauge", Data: barRequest().Data})
	assert.ErrorIs(t, err, chart.ErrUnsupportedChartType)
}

func TestInvalidateStartsFreshVersion(t *testing.T) {
	svc, mr, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Render(ctx, barRequest())
	require.NoError(t, err)

	ver, err := svc.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)
	mr.CheckGet(t, cacheVersionKey, "2")

	res, err := svc.Render(ctx, barRequest())
	require.NoError(t, err)
	assert.False(t, res.Cached)
}

func TestRenderWithoutRedis(t *testing.T) {
	svc := NewService(nil, nil, nil)

	for i := 0; i < 2; i++ {
		res, err := svc.Render(context.Background(), barRequest())
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Contains(t, res.Markup, "<svg")
	}
	ver, err := svc.Invalidate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ver)
}

func TestRenderSurvivesRedisOutage(t *testing.T) {
	svc, mr, _ := newTestService(t)
	mr.Close()

	res, err := svc.Render(context.Background(), barRequest())
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Contains(t, res.Markup, "</svg>")
}

func TestRenderConcurrentCallersAgree(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := Request{
		Kind: chart.KindLine,
		Data: chart.MultiSeries(
			chart.Series{Name: "north", Points: []chart.Item{{Label: "jan", Value: 1}, {Label: "feb", Value: 3}}},
			chart.Series{Name: "south", Points: []chart.Item{{Label: "jan", Value: 2}, {Label: "feb", Value: 1}}},
		),
	}

	var wg sync.WaitGroup
	results := make([]Result, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Render(context.Background(), req)
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].Markup, results[i].Markup)
		assert.Equal(t, results[0].ID, results[i].ID)
	}
}

func TestShareHonoursCallerContext(t *testing.T) {
	var group singleflight.Group
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err, _ := share(ctx, &group, "k", func(context.Context) (interface{}, error) {
		<-release
		return "late", nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResultETag(t *testing.T) {
	id, err := ChartID(barRequest())
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, Result{ID: id}.ETag())
}
