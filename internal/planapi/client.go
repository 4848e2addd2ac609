package planapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/google/uuid"
)

// GeneratePath is the plan service route consumed by planify.
const GeneratePath = "/generateStudyPlan"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// GenerateResponse holds the raw, unsanitized plan text. ServerError is the
// trimmed "error" field of a 2xx body, set when the server sent one.
type GenerateResponse struct {
	Plan        string
	ServerError string
	RequestID   string
	LatencyMs   int64
}

// Generator submits a study-plan request to the plan service.
type Generator interface {
	Generate(ctx context.Context, snap domain.FormSnapshot) (*GenerateResponse, error)
}

// Client implements Generator over HTTP. It issues exactly one request per
// call and never retries.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the given base endpoint.
func NewClient(endpoint string, timeout time.Duration, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type successBody struct {
	Plan  string `json:"plan"`
	Error string `json:"-"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) Generate(ctx context.Context, snap domain.FormSnapshot) (*GenerateResponse, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	sb, status, err := c.doRequest(ctx, requestID, snap)
	latency := time.Since(start).Milliseconds()
	if err != nil && status == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = ErrTimeout
	}

	c.observer.OnCallComplete(CallEvent{
		RequestID:  requestID,
		StatusCode: status,
		LatencyMs:  latency,
		Success:    err == nil,
		ErrorCode:  errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{
		Plan:        sb.Plan,
		ServerError: strings.TrimSpace(sb.Error),
		RequestID:   requestID,
		LatencyMs:   latency,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, requestID string, snap domain.FormSnapshot) (successBody, int, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return successBody{}, 0, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+GeneratePath, bytes.NewReader(data))
	if err != nil {
		return successBody{}, 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return successBody{}, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return successBody{}, httpResp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		se := &StatusError{StatusCode: httpResp.StatusCode}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			se.ServerMessage = strings.TrimSpace(eb.Error)
		}
		return successBody{}, httpResp.StatusCode, se
	}

	var sb successBody
	if err := json.Unmarshal(body, &sb); err != nil {
		return successBody{}, httpResp.StatusCode, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	// A malformed "error" field does not spoil an otherwise valid reply.
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		sb.Error = eb.Error
	}
	return sb, httpResp.StatusCode, nil
}

func errorCode(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.As(err, &se):
		return fmt.Sprintf("HTTP_%d", se.StatusCode)
	case errors.Is(err, ErrDecode):
		return "DECODE"
	case errors.Is(err, ErrTransport):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
