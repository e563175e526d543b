package service

import "errors"

var (
	ErrHomeworkStatusMissing = errors.New("homework status is missing in api response")
	ErrHomeworkStatusUnknown = errors.New("unknown homework status")
	ErrHomeworkNameMissing   = errors.New("homework name is missing in api response")

	// ErrTelegramMessage wraps any failure to deliver a message to the chat.
	ErrTelegramMessage = errors.New("send telegram message")
)
