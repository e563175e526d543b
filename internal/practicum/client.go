package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxErrorBodySize = 64 << 10

type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client

	log *slog.Logger
}

func NewClient(endpoint, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},

		log: log.With("component", "practicum"),
	}
}

// Fetch requests homework statuses updated since fromDate (unix seconds) and returns
// the decoded JSON body as is. Numbers are decoded as json.Number.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse endpoint=%s: %w", ErrAPIRequest, c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrAPIRequest, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "Requesting homework statuses", "endpoint", c.endpoint, "fromDate", fromDate)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrAPIRequest, c.endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		return nil, statusError(ErrServiceUnavailable, resp)
	case http.StatusBadRequest:
		return nil, statusError(ErrFromDateFormat, resp)
	case http.StatusUnauthorized:
		return nil, statusError(ErrUnauthorized, resp)
	default:
		return nil, statusError(ErrUnexpectedStatusCode, resp)
	}

	var res any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}

	return res, nil
}

func statusError(kind error, resp *http.Response) error {
	detail := describeBody(resp)
	if detail == "" {
		return fmt.Errorf("%w: status=%s", kind, resp.Status)
	}
	return fmt.Errorf("%w: status=%s: %s", kind, resp.Status, detail)
}

// describeBody extracts a short human-readable reason from an error response.
// Returns an empty string when nothing useful is found.
func describeBody(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(body) == 0 {
		return ""
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/html" {
		return describeHTML(body)
	}

	return describeJSON(body)
}

// describeJSON understands both shapes the API uses:
// {"code": "...", "message": "..."} and {"error": {"error": "..."}, "code": "..."}.
func describeJSON(body []byte) string {
	var payload struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	reason := payload.Message
	if reason == "" && len(payload.Error) > 0 {
		var nested struct {
			Error string `json:"error"`
		}
		var plain string
		switch {
		case json.Unmarshal(payload.Error, &nested) == nil && nested.Error != "":
			reason = nested.Error
		case json.Unmarshal(payload.Error, &plain) == nil:
			reason = plain
		}
	}

	switch {
	case reason != "" && payload.Code != "":
		return payload.Code + ": " + reason
	case reason != "":
		return reason
	default:
		return payload.Code
	}
}

func describeHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
