package service

import (
	"fmt"

	"github.com/Roma7-7-7/homework-notifier/internal/practicum"
)

const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"

	statusChangedTemplate = `Изменился статус проверки работы "%s". %s`
)

// Verdicts maps a homework status to the text shown to the user.
type Verdicts map[string]string

func DefaultVerdicts() Verdicts {
	return Verdicts{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}

// ParseStatus builds the notification text for a single homework.
// The status is checked before the name, so an unknown status is reported regardless of other fields.
func (v Verdicts) ParseStatus(hw practicum.Homework) (string, error) {
	if hw.Status == "" {
		return "", ErrHomeworkStatusMissing
	}
	verdict, ok := v[hw.Status]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrHomeworkStatusUnknown, hw.Status)
	}
	if hw.Name == "" {
		return "", ErrHomeworkNameMissing
	}

	return fmt.Sprintf(statusChangedTemplate, hw.Name, verdict), nil
}
