package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSMSProvider talks to a form-POST SMS gateway.
type HTTPSMSProvider struct {
	BaseURL  string
	APIKey   string
	UserID   string
	Password string
	SenderID string
	client   *http.Client
}

func NewHTTPSMSProvider(baseURL, apiKey, userID, password, senderID string) *HTTPSMSProvider {
	return &HTTPSMSProvider{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		UserID:   userID,
		Password: password,
		SenderID: senderID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPSMSProvider) Send(ctx context.Context, phoneNumber, messageText string) (string, error) {
	start := time.Now()

	form := url.Values{}
	form.Set("userid", p.UserID)
	form.Set("password", p.Password)
	form.Set("senderid", p.SenderID)
	form.Set("sendMethod", "quick")
	form.Set("msgType", "unicode")
	form.Set("msg", messageText)
	form.Set("mobile", phoneNumber)
	form.Set("duplicatecheck", "true")
	form.Set("output", "json")

	apiURL := p.BaseURL + "/SMSApi/send"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// If using API key authentication instead of userid/password
	if p.APIKey != "" {
		httpReq.Header.Set("apikey", p.APIKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		log.Printf("[SMS] HTTP error sending to %s: %v", maskPhone(phoneNumber), err)
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SMS] Failed sending | Recipient=%s | Status=%d | Duration=%v | Response=%s",
			maskPhone(phoneNumber), resp.StatusCode, duration, string(body))
		return "", fmt.Errorf("sms api error: %s", string(body))
	}

	var parsed struct {
		Status        string `json:"status"`
		TransactionID string `json:"transactionId"`
		Reason        string `json:"reason"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && strings.EqualFold(parsed.Status, "error") {
		return "", fmt.Errorf("sms api rejected: %s", parsed.Reason)
	}

	log.Printf("[SMS] Successfully sent | Recipient=%s | Duration=%v", maskPhone(phoneNumber), duration)
	return parsed.TransactionID, nil
}

func maskPhone(phone string) string {
	if phone == "" {
		return "[empty]"
	}
	if len(phone) < 4 {
		return "***"
	}
	return "***" + phone[len(phone)-4:]
}
