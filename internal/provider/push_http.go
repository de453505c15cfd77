package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// HTTPPushProvider talks to an FCM-style HTTP push endpoint.
type HTTPPushProvider struct {
	BaseURL   string
	ServerKey string
	client    *http.Client
}

func NewHTTPPushProvider(baseURL, serverKey string) *HTTPPushProvider {
	return &HTTPPushProvider{
		BaseURL:   baseURL,
		ServerKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPPushProvider) Send(ctx context.Context, deviceToken string, payload PushPayload, highPriority bool) (string, error) {
	priority := "normal"
	if highPriority {
		priority = "high"
	}

	reqBody := map[string]interface{}{
		"to": deviceToken,
		"notification": map[string]string{
			"title": payload.Title,
			"body":  payload.Body,
		},
		"data":     payload.Data,
		"priority": priority,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/fcm/send", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.ServerKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("push http error: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("push api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Results []struct {
			MessageID string `json:"message_id"`
			Error     string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("push response parse error: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", fmt.Errorf("push response had no results")
	}

	res := parsed.Results[0]
	switch res.Error {
	case "":
		return res.MessageID, nil
	case "NotRegistered", "InvalidRegistration", "MismatchSenderId":
		log.Printf("[PUSH] invalid token reported by provider: %s", res.Error)
		return "", fmt.Errorf("%s: %w", res.Error, xerrors.ErrInvalidToken)
	default:
		return "", fmt.Errorf("push send failed: %s", res.Error)
	}
}
