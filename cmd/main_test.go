package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
)

func TestLevelOption(t *testing.T) {
	tests := []struct {
		name      string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{name: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{name: "info", wantInfo: true, wantWarn: true},
		{name: "warn", wantWarn: true},
		{name: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := level.NewFilter(log.NewLogfmtLogger(&buf), levelOption(tt.name))

			buf.Reset()
			_ = level.Debug(logger).Log("msg", "x")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0, "debug")

			buf.Reset()
			_ = level.Info(logger).Log("msg", "x")
			assert.Equal(t, tt.wantInfo, buf.Len() > 0, "info")

			buf.Reset()
			_ = level.Warn(logger).Log("msg", "x")
			assert.Equal(t, tt.wantWarn, buf.Len() > 0, "warn")

			buf.Reset()
			_ = level.Error(logger).Log("msg", "x")
			assert.True(t, buf.Len() > 0, "error is always logged")
		})
	}
}

func TestStopWithin_FreshBudgetPerStage(t *testing.T) {
	const grace = 50 * time.Millisecond

	// A stage that uses up its whole budget.
	err := stopWithin(grace, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The next stage still gets its own grace period.
	err = stopWithin(grace, func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.Greater(t, time.Until(deadline), grace/2)
		return ctx.Err()
	})
	assert.NoError(t, err)
}
