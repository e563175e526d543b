package service_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/Roma7-7-7/telegram"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Roma7-7-7/homework-notifier/internal/practicum"
	"github.com/Roma7-7-7/homework-notifier/internal/service"
	"github.com/Roma7-7-7/homework-notifier/internal/service/mocks"
	"github.com/Roma7-7-7/homework-notifier/pkg/clock"
)

const (
	chatID    = "123"
	startedAt = int64(1700000000)

	approvedHw1 = `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`
	rejectedHw1 = `Изменился статус проверки работы "hw1". Работа проверена: у ревьюера есть замечания.`
)

func body(currentDate int64, homeworks ...map[string]any) map[string]any {
	list := make([]any, 0, len(homeworks))
	for _, hw := range homeworks {
		list = append(list, hw)
	}
	return map[string]any{
		"homeworks":    list,
		"current_date": currentDate,
	}
}

func homework(name, status string) map[string]any {
	return map[string]any{"homework_name": name, "status": status}
}

func TestHomeworks_Poll(t *testing.T) {
	unauthorized := fmt.Errorf("%w: status=401 Unauthorized", practicum.ErrUnauthorized)
	unauthorizedMsg := "Сбой в работе программы: fetch homework statuses: practicum api authorization failed: status=401 Unauthorized"

	type fields struct {
		practicum func(*gomock.Controller) service.PracticumClient
		telegram  func(*gomock.Controller) service.TelegramClient
	}
	tests := []struct {
		name   string
		fields fields
		polls  int
	}{
		{
			name: "status_changed",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					res.EXPECT().Fetch(gomock.Any(), startedAt).Return(body(100, homework("hw1", "approved")), nil)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					res.EXPECT().SendMessage(gomock.Any(), chatID, approvedHw1).Return(nil)
					return res
				},
			},
			polls: 1,
		},
		{
			name: "same_status_sent_once",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					gomock.InOrder(
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(body(100, homework("hw1", "approved")), nil),
						res.EXPECT().Fetch(gomock.Any(), int64(100)).Return(body(150, homework("hw1", "approved")), nil),
						res.EXPECT().Fetch(gomock.Any(), int64(150)).Return(body(200, homework("hw1", "rejected")), nil),
					)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					gomock.InOrder(
						res.EXPECT().SendMessage(gomock.Any(), chatID, approvedHw1).Return(nil),
						res.EXPECT().SendMessage(gomock.Any(), chatID, rejectedHw1).Return(nil),
					)
					return res
				},
			},
			polls: 3,
		},
		{
			name: "no_homeworks",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					gomock.InOrder(
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(body(200), nil),
						res.EXPECT().Fetch(gomock.Any(), int64(200)).Return(body(250), nil),
					)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					return mocks.NewMockTelegramClient(ctrl)
				},
			},
			polls: 2,
		},
		{
			name: "only_newest_homework_is_reported",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					res.EXPECT().Fetch(gomock.Any(), startedAt).
						Return(body(100, homework("hw1", "rejected"), homework("hw0", "approved")), nil)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					res.EXPECT().SendMessage(gomock.Any(), chatID, rejectedHw1).Return(nil)
					return res
				},
			},
			polls: 1,
		},
		{
			name: "unauthorized_reported_once_and_cursor_kept",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					gomock.InOrder(
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, unauthorized),
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, unauthorized),
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(body(100, homework("hw1", "approved")), nil),
						res.EXPECT().Fetch(gomock.Any(), int64(100)).Return(nil, unauthorized),
					)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					gomock.InOrder(
						res.EXPECT().SendMessage(gomock.Any(), chatID, unauthorizedMsg).Return(nil),
						res.EXPECT().SendMessage(gomock.Any(), chatID, approvedHw1).Return(nil),
					)
					return res
				},
			},
			polls: 4,
		},
		{
			name: "different_failures_reported",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					gomock.InOrder(
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, unauthorized),
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, fmt.Errorf("%w: status=503 Service Unavailable", practicum.ErrServiceUnavailable)),
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, unauthorized),
					)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					gomock.InOrder(
						res.EXPECT().SendMessage(gomock.Any(), chatID, unauthorizedMsg).Return(nil),
						res.EXPECT().SendMessage(gomock.Any(), chatID, "Сбой в работе программы: fetch homework statuses: practicum api is unavailable: status=503 Service Unavailable").Return(nil),
						res.EXPECT().SendMessage(gomock.Any(), chatID, unauthorizedMsg).Return(nil),
					)
					return res
				},
			},
			polls: 3,
		},
		{
			name: "invalid_response_moves_cursor",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					gomock.InOrder(
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(map[string]any{"current_date": int64(300)}, nil),
						res.EXPECT().Fetch(gomock.Any(), int64(300)).Return(body(350), nil),
					)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					res.EXPECT().SendMessage(gomock.Any(), chatID, "Сбой в работе программы: validate response: missing key in practicum api response: homeworks").Return(nil)
					return res
				},
			},
			polls: 2,
		},
		{
			name: "unknown_status_reported",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					res.EXPECT().Fetch(gomock.Any(), startedAt).Return(body(100, homework("hw1", "on_hold")), nil)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					res.EXPECT().SendMessage(gomock.Any(), chatID, "Сбой в работе программы: parse homework status: unknown homework status: on_hold").Return(nil)
					return res
				},
			},
			polls: 1,
		},
		{
			name: "failed_status_delivery_retried",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					gomock.InOrder(
						res.EXPECT().Fetch(gomock.Any(), startedAt).Return(body(100, homework("hw1", "approved")), nil),
						res.EXPECT().Fetch(gomock.Any(), int64(100)).Return(body(110, homework("hw1", "approved")), nil),
						res.EXPECT().Fetch(gomock.Any(), int64(110)).Return(body(120, homework("hw1", "approved")), nil),
					)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					gomock.InOrder(
						res.EXPECT().SendMessage(gomock.Any(), chatID, approvedHw1).Return(assert.AnError),
						res.EXPECT().SendMessage(gomock.Any(), chatID, approvedHw1).Return(nil),
					)
					return res
				},
			},
			polls: 3,
		},
		{
			name: "failed_failure_delivery_retried",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, unauthorized).Times(3)
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					res := mocks.NewMockTelegramClient(ctrl)
					gomock.InOrder(
						res.EXPECT().SendMessage(gomock.Any(), chatID, unauthorizedMsg).Return(telegram.ErrForbidden),
						res.EXPECT().SendMessage(gomock.Any(), chatID, unauthorizedMsg).Return(nil),
					)
					return res
				},
			},
			polls: 3,
		},
		{
			name: "cancelled_not_reported",
			fields: fields{
				practicum: func(ctrl *gomock.Controller) service.PracticumClient {
					res := mocks.NewMockPracticumClient(ctrl)
					res.EXPECT().Fetch(gomock.Any(), startedAt).Return(nil, fmt.Errorf("%w: %w", practicum.ErrAPIRequest, context.Canceled))
					return res
				},
				telegram: func(ctrl *gomock.Controller) service.TelegramClient {
					return mocks.NewMockTelegramClient(ctrl)
				},
			},
			polls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			s := service.NewHomeworks(
				tt.fields.practicum(ctrl),
				tt.fields.telegram(ctrl),
				service.DefaultVerdicts(),
				chatID,
				clock.NewMock(time.Unix(startedAt, 0)),
				slog.New(slog.DiscardHandler),
			)
			for range tt.polls {
				s.Poll(t.Context())
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	err := fmt.Errorf("fetch homework statuses: %w", practicum.ErrServiceUnavailable)

	assert.Equal(t, "Сбой в работе программы: fetch homework statuses: practicum api is unavailable", service.FailureMessage(err))
	assert.Equal(t, service.FailureMessage(err), service.FailureMessage(errors.New(err.Error())))
}
