package practicum

import (
	"encoding/json"
	"fmt"
)

type (
	// Statuses is a validated API response.
	Statuses struct {
		// Homeworks is ordered newest first. Empty means nothing changed since the requested date.
		Homeworks   []Homework
		CurrentDate int64
	}

	Homework struct {
		ID              int64
		Status          string
		Name            string
		LessonName      string
		ReviewerComment string
		DateUpdated     string
	}
)

// Validate checks the shape of a body returned by Client.Fetch and converts it to Statuses.
func Validate(body any) (Statuses, error) {
	var res Statuses

	m, ok := body.(map[string]any)
	if !ok {
		return res, fmt.Errorf("%w: body is %T, expected object", ErrResponseType, body)
	}

	rawHomeworks, ok := m["homeworks"]
	if !ok {
		return res, fmt.Errorf("%w: homeworks", ErrResponseKeys)
	}
	rawDate, ok := m["current_date"]
	if !ok {
		return res, fmt.Errorf("%w: current_date", ErrResponseKeys)
	}

	list, ok := rawHomeworks.([]any)
	if !ok {
		return res, fmt.Errorf("%w: homeworks is %T, expected array", ErrResponseType, rawHomeworks)
	}

	date, ok := toInt64(rawDate)
	if !ok {
		return res, fmt.Errorf("%w: current_date=%v is not an integer", ErrResponseType, rawDate)
	}

	res.CurrentDate = date
	res.Homeworks = make([]Homework, 0, len(list))
	for _, item := range list {
		res.Homeworks = append(res.Homeworks, toHomework(item))
	}

	return res, nil
}

// CurrentDate returns the cursor of a fetched body without validating the rest of it.
func CurrentDate(body any) (int64, bool) {
	m, ok := body.(map[string]any)
	if !ok {
		return 0, false
	}
	raw, ok := m["current_date"]
	if !ok {
		return 0, false
	}
	return toInt64(raw)
}

func toHomework(item any) Homework {
	m, ok := item.(map[string]any)
	if !ok {
		return Homework{}
	}

	id, _ := toInt64(m["id"])
	return Homework{
		ID:              id,
		Status:          toString(m["status"]),
		Name:            toString(m["homework_name"]),
		LessonName:      toString(m["lesson_name"]),
		ReviewerComment: toString(m["reviewer_comment"]),
		DateUpdated:     toString(m["date_updated"]),
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
