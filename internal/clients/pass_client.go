package clients

//go:generate mockgen -source=pass_client.go -destination=mocks/mock_pass_client.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"skypass/internal/models"
)

const maxPassResponseBytes = 1 << 20

// Failure classes of a pass request. Callers may log them apart; users see
// one message.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected status")
	ErrDecode    = errors.New("undecodable response")
)

type PassClient interface {
	FetchPasses(ctx context.Context, req models.PassRequest) ([]models.PassRecord, error)
}

type passClient struct {
	url        string
	httpClient *http.Client
}

// NewPassClient returns a client for the prediction endpoint at url. A zero
// timeout leaves requests unbounded.
func NewPassClient(url string, timeout time.Duration) PassClient {
	return &passClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *passClient) FetchPasses(ctx context.Context, passReq models.PassRequest) ([]models.PassRecord, error) {
	body, err := json.Marshal(passReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Skypass/1.0")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, string(snippet))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPassResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	if len(raw) > maxPassResponseBytes {
		return nil, fmt.Errorf("%w: body exceeds %d byte limit", ErrDecode, maxPassResponseBytes)
	}

	var passes []models.PassRecord
	if err := json.Unmarshal(raw, &passes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if passes == nil {
		// JSON null is not an array.
		return nil, fmt.Errorf("%w: expected array, got null", ErrDecode)
	}

	return passes, nil
}
