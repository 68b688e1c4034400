package jobs

import (
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/svgchart/internal/render"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskChartWarmup renders a chart into the cache ahead of its first request.
	TaskChartWarmup = "chart:warmup"
)

// NewChartWarmupTask constructs an Asynq task along with the chart id it is
// keyed by. The payload is the YAML request encoding so the dataset keeps its
// order; the task id is the chart id, so one chart is queued at most once at
// a time.
func NewChartWarmupTask(req render.Request) (*asynq.Task, string, error) {
	id, err := render.ChartID(req)
	if err != nil {
		return nil, "", err
	}
	data, err := render.EncodeRequest(req)
	if err != nil {
		return nil, "", fmt.Errorf("jobs: encode warmup payload: %w", err)
	}
	return asynq.NewTask(TaskChartWarmup, data, asynq.TaskID(id.String()), asynq.MaxRetry(3)), id.String(), nil
}

// DecodeChartWarmup parses a TaskChartWarmup payload.
func DecodeChartWarmup(t *asynq.Task) (render.Request, error) {
	req, err := render.DecodeRequest(t.Payload())
	if err != nil {
		return render.Request{}, fmt.Errorf("jobs: decode warmup payload: %w", err)
	}
	return req, nil
}
