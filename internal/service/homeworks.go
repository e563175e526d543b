package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Roma7-7-7/telegram"
	"github.com/google/uuid"

	"github.com/Roma7-7-7/homework-notifier/internal/practicum"
)

//go:generate mockgen -package mocks -destination mocks/telegram.go . TelegramClient

//go:generate mockgen -package mocks -destination mocks/practicum.go . PracticumClient

const failureTemplate = "Сбой в работе программы: %s"

type (
	TelegramClient interface {
		SendMessage(ctx context.Context, chatID, msg string) error
	}

	PracticumClient interface {
		Fetch(ctx context.Context, fromDate int64) (any, error)
	}

	Clock interface {
		Now() time.Time
	}

	// Homeworks tracks the review status of the latest homework and reports changes to a single chat.
	// It is driven by one goroutine; see Scheduler.
	Homeworks struct {
		practicum PracticumClient
		telegram  TelegramClient
		verdicts  Verdicts
		chatID    string

		timestamp         int64
		lastStatusMessage string
		lastErrorMessage  string

		log *slog.Logger
	}
)

func NewHomeworks(
	practicum PracticumClient,
	telegram TelegramClient,
	verdicts Verdicts,
	chatID string,
	clock Clock,
	log *slog.Logger,
) *Homeworks {
	return &Homeworks{
		practicum: practicum,
		telegram:  telegram,
		verdicts:  verdicts,
		chatID:    chatID,

		timestamp: clock.Now().Unix(),

		log: log.With("component", "service").With("service", "homeworks"),
	}
}

// Poll runs a single check. Failures never escape: they are logged and reported to the chat
// unless the same failure text was the last one reported.
func (s *Homeworks) Poll(ctx context.Context) {
	log := s.log.With("cycle", uuid.NewString())

	err := s.check(ctx, log)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		log.InfoContext(ctx, "Homework check interrupted", "error", err)
		return
	}

	log.ErrorContext(ctx, "Homework check failed", "error", err)

	msg := FailureMessage(err)
	if msg == s.lastErrorMessage {
		log.DebugContext(ctx, "Failure already reported")
		return
	}
	if err := s.send(ctx, log, msg); err != nil {
		return
	}
	s.lastErrorMessage = msg
}

// FailureMessage is the text sent to the chat when a check fails.
func FailureMessage(err error) string {
	return fmt.Sprintf(failureTemplate, err)
}

func (s *Homeworks) check(ctx context.Context, log *slog.Logger) error {
	body, err := s.practicum.Fetch(ctx, s.timestamp)
	if err != nil {
		return fmt.Errorf("fetch homework statuses: %w", err)
	}

	// the cursor moves even if the rest of the response turns out to be invalid
	if date, ok := practicum.CurrentDate(body); ok {
		s.timestamp = date
	}

	statuses, err := practicum.Validate(body)
	if err != nil {
		return fmt.Errorf("validate response: %w", err)
	}

	if len(statuses.Homeworks) == 0 {
		log.DebugContext(ctx, "No new homework statuses", "currentDate", statuses.CurrentDate)
		return nil
	}

	hw := statuses.Homeworks[0]
	log.DebugContext(ctx, "Got homework status", "id", hw.ID, "name", hw.Name, "status", hw.Status, "updated", hw.DateUpdated)
	msg, err := s.verdicts.ParseStatus(hw)
	if err != nil {
		return fmt.Errorf("parse homework status: %w", err)
	}

	if msg == s.lastStatusMessage {
		log.DebugContext(ctx, "Homework status not changed")
		return nil
	}

	// on delivery failure the message is retried on the next cycle
	if err := s.send(ctx, log, msg); err == nil {
		s.lastStatusMessage = msg
	}

	return nil
}

func (s *Homeworks) send(ctx context.Context, log *slog.Logger, msg string) error {
	log.DebugContext(ctx, "Sending message", "message", msg)

	if err := s.telegram.SendMessage(ctx, s.chatID, msg); err != nil {
		err = fmt.Errorf("%w: %w", ErrTelegramMessage, err)
		if errors.Is(err, telegram.ErrForbidden) {
			log.ErrorContext(ctx, "Bot is not allowed to write to the chat", "chatID", s.chatID, "error", err)
			return err
		}
		log.ErrorContext(ctx, "Failed to send message", "chatID", s.chatID, "error", err)
		return err
	}

	log.DebugContext(ctx, "Message sent", "message", msg)
	return nil
}
