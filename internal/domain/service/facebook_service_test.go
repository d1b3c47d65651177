package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "messengerpulse/pkg/errors"
)

func newTestFacebookService(baseURL string) *FacebookService {
	return NewFacebookService(FacebookConfig{
		BaseURL:       baseURL,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	})
}

func TestGetPageDetailsRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"id":"123","name":"Test Page"}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	details, err := svc.GetPageDetails(context.Background(), "real_token")

	require.NoError(t, err)
	assert.Equal(t, "123", details.ID)
	assert.Equal(t, "Test Page", details.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetPageDetailsRetryBudgetExhausted(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	_, err := svc.GetPageDetails(context.Background(), "real_token")

	require.Error(t, err)
	// Initial try plus two retries.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetPageDetailsDoesNotRetryClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	_, err := svc.GetPageDetails(context.Background(), "bad_token")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "TOKEN_INVALID"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetPageDetailsMockTokenSkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	details, err := svc.GetPageDetails(context.Background(), MockTokenPrefix+"anything")

	require.NoError(t, err)
	assert.Equal(t, MockPageID, details.ID)
	assert.Equal(t, MockPageName, details.Name)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func threadPage(serverURL string, next bool, ids ...string) string {
	threads := make([]Thread, 0, len(ids))
	for _, id := range ids {
		threads = append(threads, Thread{ID: id})
	}
	out := conversationListResponse{Data: threads}
	if next {
		out.Paging = &Paging{Next: serverURL + "/next"}
	}
	b, _ := json.Marshal(out)
	return string(b)
}

func TestFetchConversationsFollowsPaging(t *testing.T) {
	var calls int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			fmt.Fprint(w, threadPage(server.URL, true, "t1", "t2"))
		case 2:
			fmt.Fprint(w, threadPage(server.URL, true, "t3"))
		default:
			fmt.Fprint(w, threadPage(server.URL, false, "t4"))
		}
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	conversations, err := svc.FetchConversations(context.Background(), "PAGE", "real_token")

	require.NoError(t, err)
	require.Len(t, conversations, 4)
	assert.Equal(t, "t1", conversations[0].ID)
	assert.Equal(t, "t4", conversations[3].ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchConversationsStopsAtPageCap(t *testing.T) {
	var calls int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		// Always advertise a next page; only the cap should stop the loop.
		fmt.Fprint(w, threadPage(server.URL, true, fmt.Sprintf("t%d", n)))
	}))
	defer server.Close()

	svc := NewFacebookService(FacebookConfig{
		BaseURL:       server.URL,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		MaxPages:      2,
	})
	conversations, err := svc.FetchConversations(context.Background(), "PAGE", "real_token")

	require.NoError(t, err)
	assert.Len(t, conversations, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchConversationsFirstPageProviderErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"Permission denied","type":"OAuthException","code":10}}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	conversations, err := svc.FetchConversations(context.Background(), "PAGE", "real_token")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "PROVIDER_ERROR"))
	assert.Contains(t, err.Error(), "(#10)")
	assert.Nil(t, conversations)
}

func TestFetchConversationsLaterPageErrorKeepsPartialResult(t *testing.T) {
	var calls int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			fmt.Fprint(w, threadPage(server.URL, true, "t1", "t2"))
			return
		}
		fmt.Fprint(w, `{"error":{"message":"Please reduce the amount of data","code":1}}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	conversations, err := svc.FetchConversations(context.Background(), "PAGE", "real_token")

	require.NoError(t, err)
	assert.Len(t, conversations, 2)
}

func TestSendMessagePostsExpectedPayload(t *testing.T) {
	var captured sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"recipient_id":"U1","message_id":"mid.123"}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	err := svc.SendMessage(context.Background(), "U1", "hello there", "real_token")

	require.NoError(t, err)
	assert.Equal(t, "U1", captured.Recipient.ID)
	assert.Equal(t, "hello there", captured.Message.Text)
	assert.Equal(t, "RESPONSE", captured.MessagingType)
}

func TestSendMessageRecipientUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"This person isn't available right now.","code":551}}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	err := svc.SendMessage(context.Background(), "U1", "hello", "real_token")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "RECIPIENT_UNAVAILABLE"))
	assert.Contains(t, err.Error(), "551")
}

func TestSendMessageOtherProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"Invalid parameter","code":100}}`)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	err := svc.SendMessage(context.Background(), "U1", "hello", "real_token")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "PROVIDER_ERROR"))
	assert.Contains(t, err.Error(), "(#100) Invalid parameter")
}

func TestSendMessageMockTokenSkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	err := svc.SendMessage(context.Background(), "U1", "hello", MockTokenPrefix+"token")

	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetchConversationsMockDataset(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	svc := newTestFacebookService(server.URL)
	conversations, err := svc.FetchConversations(context.Background(), MockPageID, MockTokenPrefix+"token")

	require.NoError(t, err)
	assert.Len(t, conversations, 5)
	assert.Zero(t, atomic.LoadInt32(&calls))
	for _, conv := range conversations {
		assert.NotEmpty(t, conv.PartnerID)
		assert.NotEmpty(t, conv.Messages)
	}
}
