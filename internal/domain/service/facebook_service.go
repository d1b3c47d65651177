package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"messengerpulse/internal/domain/entity"
	apperrors "messengerpulse/pkg/errors"
	"messengerpulse/pkg/logger"
)

// MockTokenPrefix designates a simulated credential. Any token carrying it
// must never trigger a network call, across every operation.
const MockTokenPrefix = "mock_"

const (
	MockPageID   = "1000123456789"
	MockPageName = "Magazin Demo (Mock)"
)

// FacebookService - Graph API client for a page's Messenger inbox
type FacebookService struct {
	baseURL       string
	httpClient    *http.Client
	retryAttempts int
	retryDelay    time.Duration
	maxPages      int
	batchSize     int
	messageLimit  int
	mockDelay     time.Duration
}

type FacebookConfig struct {
	BaseURL       string
	RetryAttempts int           // extra attempts after the first try
	RetryDelay    time.Duration // initial backoff, grows x1.5 per attempt
	MaxPages      int
	BatchSize     int
	MessageLimit  int
	MockDelay     time.Duration // simulated latency on the mock path
}

func NewFacebookService(cfg FacebookConfig) *FacebookService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com/v19.0"
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 5
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 6
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.MessageLimit == 0 {
		cfg.MessageLimit = 50
	}

	return &FacebookService{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		maxPages:      cfg.MaxPages,
		batchSize:     cfg.BatchSize,
		messageLimit:  cfg.MessageLimit,
		mockDelay:     cfg.MockDelay,
	}
}

// doWithRetry performs one HTTP request, retrying on transport errors and
// 5xx responses with exponential backoff (multiplier 1.5). Any other
// response, including 4xx, is returned immediately without inspecting the
// body; provider-level error objects are the caller's job.
func (s *FacebookService) doWithRetry(ctx context.Context, method, rawURL string, body []byte) (*http.Response, error) {
	retries := s.retryAttempts
	delay := s.retryDelay

	for {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := s.httpClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if err == nil {
			resp.Body.Close()
			err = fmt.Errorf("server error: %d", resp.StatusCode)
		}

		if retries <= 0 {
			return nil, err
		}
		logger.Warn("Request failed, retrying in %s (%d retries left): %v", delay, retries, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		retries--
		delay = delay * 3 / 2
	}
}

// GetPageDetails verifies the token and fetches the canonical page ID and
// name. Used at login and at reconnect time so a user-supplied page ID is
// never trusted.
func (s *FacebookService) GetPageDetails(ctx context.Context, accessToken string) (*PageDetails, error) {
	if strings.HasPrefix(accessToken, MockTokenPrefix) {
		return &PageDetails{ID: MockPageID, Name: MockPageName}, nil
	}

	reqURL := fmt.Sprintf("%s/me?fields=id,name&access_token=%s", s.baseURL, url.QueryEscape(accessToken))
	resp, err := s.doWithRetry(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.Internal("Failed to reach the Graph API", err)
	}
	defer resp.Body.Close()

	var out pageDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Internal("Failed to decode page details response", err)
	}
	if out.Error != nil {
		return nil, apperrors.TokenInvalid(out.Error.Message, nil)
	}

	return &PageDetails{ID: out.ID, Name: out.Name}, nil
}

// FetchConversations returns the page's normalized conversation list. The
// mock path returns the canned dataset after a simulated delay; the real
// path pages through the conversations endpoint and transforms whatever
// accumulated.
func (s *FacebookService) FetchConversations(ctx context.Context, pageID, accessToken string) ([]entity.Conversation, error) {
	if strings.HasPrefix(accessToken, MockTokenPrefix) {
		logger.Info("Using simulated conversation data (mock token detected)")
		if err := s.simulateDelay(ctx); err != nil {
			return nil, err
		}
		return MockConversations(time.Now()), nil
	}

	threads, err := s.fetchThreads(ctx, pageID, accessToken)
	if err != nil {
		return nil, err
	}
	return TransformThreads(threads, pageID), nil
}

// fetchThreads follows paging.next up to the page cap. A provider error or
// transport failure on the first page fails the whole listing; on a later
// page the loop stops early and the accumulated threads are kept (partial
// success beats total failure once one page landed).
func (s *FacebookService) fetchThreads(ctx context.Context, pageID, accessToken string) ([]Thread, error) {
	fields := fmt.Sprintf("participants,updated_time,messages.limit(%d){message,created_time,from,to}", s.messageLimit)
	next := fmt.Sprintf("%s/%s/conversations?limit=%d&fields=%s&access_token=%s",
		s.baseURL, url.PathEscape(pageID), s.batchSize, url.QueryEscape(fields), url.QueryEscape(accessToken))

	var threads []Thread
	for page := 0; next != "" && page < s.maxPages; page++ {
		out, err := s.fetchThreadPage(ctx, next)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			logger.Warn("Failed to fetch conversation page %d, stopping early: %v", page+1, err)
			break
		}
		if out.Error != nil {
			if page == 0 {
				return nil, apperrors.ProviderError(out.Error.Code, out.Error.Message)
			}
			logger.Warn("Provider error on conversation page %d, stopping early: (#%d) %s", page+1, out.Error.Code, out.Error.Message)
			break
		}

		threads = append(threads, out.Data...)

		next = ""
		if out.Paging != nil {
			next = out.Paging.Next
		}
	}

	return threads, nil
}

func (s *FacebookService) fetchThreadPage(ctx context.Context, pageURL string) (*conversationListResponse, error) {
	resp, err := s.doWithRetry(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperrors.Internal("Failed to reach the Graph API", err)
	}
	defer resp.Body.Close()

	var out conversationListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Internal("Failed to decode conversations response", err)
	}
	return &out, nil
}

// SendMessage posts one outbound message to a PSID. Error 551 (recipient
// unavailable) gets its own user-actionable mapping; other provider errors
// are wrapped with their code preserved.
func (s *FacebookService) SendMessage(ctx context.Context, recipientID, text, accessToken string) error {
	if strings.HasPrefix(accessToken, MockTokenPrefix) {
		logger.Info("[SIMULATION] Message sent to %s: %s", recipientID, text)
		return s.simulateDelay(ctx)
	}

	body, err := json.Marshal(sendMessageRequest{
		Recipient:     idRef{ID: recipientID},
		Message:       textRef{Text: text},
		MessagingType: "RESPONSE",
	})
	if err != nil {
		return apperrors.Internal("Failed to marshal send request", err)
	}

	reqURL := fmt.Sprintf("%s/me/messages?access_token=%s", s.baseURL, url.QueryEscape(accessToken))
	resp, err := s.doWithRetry(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return apperrors.Internal("Failed to reach the Graph API", err)
	}
	defer resp.Body.Close()

	var out sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return apperrors.Internal("Failed to decode send response", err)
	}
	if out.Error != nil {
		if out.Error.Code == 551 {
			return apperrors.RecipientUnavailable()
		}
		return apperrors.ProviderError(out.Error.Code, out.Error.Message)
	}

	return nil
}

func (s *FacebookService) simulateDelay(ctx context.Context) error {
	if s.mockDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.mockDelay):
		return nil
	}
}
