package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Roma7-7-7/homework-notifier/internal/service"
	"github.com/Roma7-7-7/homework-notifier/internal/service/mocks"
)

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name       string
		poller     func(*gomock.Controller, context.CancelFunc) service.Poller
		wantCycles int
	}{
		{
			name: "runs_until_cancelled",
			poller: func(ctrl *gomock.Controller, cancel context.CancelFunc) service.Poller {
				res := mocks.NewMockPoller(ctrl)
				gomock.InOrder(
					res.EXPECT().Poll(gomock.Any()),
					res.EXPECT().Poll(gomock.Any()),
					res.EXPECT().Poll(gomock.Any()).Do(func(context.Context) { cancel() }),
				)
				return res
			},
			wantCycles: 3,
		},
		{
			name: "survives_panic",
			poller: func(ctrl *gomock.Controller, cancel context.CancelFunc) service.Poller {
				res := mocks.NewMockPoller(ctrl)
				gomock.InOrder(
					res.EXPECT().Poll(gomock.Any()).Do(func(context.Context) { panic("boom") }),
					res.EXPECT().Poll(gomock.Any()).Do(func(context.Context) { cancel() }),
				)
				return res
			},
			wantCycles: 2,
		},
		{
			name: "already_cancelled",
			poller: func(ctrl *gomock.Controller, cancel context.CancelFunc) service.Poller {
				cancel()
				return mocks.NewMockPoller(ctrl)
			},
			wantCycles: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			cycles := 0
			done := make(chan struct{})
			go func() {
				defer close(done)
				service.NewScheduler(tt.poller(ctrl, cancel), time.Millisecond, slog.New(slog.DiscardHandler)).
					WithAfterCycle(func() { cycles++ }).
					Start(ctx)
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("scheduler did not stop")
			}
			assert.Equal(t, tt.wantCycles, cycles)
		})
	}
}

func TestScheduler_Start_WaitsForInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	poller := mocks.NewMockPoller(ctrl)
	poller.EXPECT().Poll(gomock.Any()).Times(1)

	service.NewScheduler(poller, time.Hour, slog.New(slog.DiscardHandler)).Start(ctx)
}
