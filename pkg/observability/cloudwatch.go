package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// CloudWatchClient is the subset of the CloudWatch API used for metrics
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics pushes command metrics to CloudWatch
type Metrics struct {
	namespace string
	client    CloudWatchClient
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance. A nil client disables it.
func NewMetrics(namespace string, client CloudWatchClient, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordCommand records metrics for a mutating command
func (m *Metrics) RecordCommand(ctx context.Context, command string, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return
	}

	now := time.Now()
	dims := []types.Dimension{
		{Name: aws.String("CommandName"), Value: aws.String(command)},
		{Name: aws.String("Status"), Value: aws.String(statusLabel(err))},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String("CommandExecution"),
				Dimensions: dims,
				Value:      aws.Float64(float64(duration.Milliseconds())),
				Unit:       types.StandardUnitMilliseconds,
				Timestamp:  aws.Time(now),
			},
			{
				MetricName: aws.String("CommandCount"),
				Dimensions: dims,
				Value:      aws.Float64(1),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(now),
			},
		},
	}

	// Metrics never fail the request
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("Failed to send metrics", zap.String("command", command), zap.Error(err))
	}
}

// CommandRecorder records the outcome of a mutating command
type CommandRecorder interface {
	RecordCommand(ctx context.Context, command string, duration time.Duration, err error)
}

// MultiRecorder fans a command out to several recorders
type MultiRecorder []CommandRecorder

// RecordCommand forwards to every recorder
func (m MultiRecorder) RecordCommand(ctx context.Context, command string, duration time.Duration, err error) {
	for _, r := range m {
		if r != nil {
			r.RecordCommand(ctx, command, duration, err)
		}
	}
}
