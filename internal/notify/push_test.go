package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPushSender(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		target  string
		wantErr bool
	}{
		{"valid", "http://gateway.local/send", "628123456789", false},
		{"missing url", "", "628123456789", true},
		{"missing target", "http://gateway.local/send", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewPushSender(tt.url, "token", tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, sender)
		})
	}
}

func TestPushSenderSend(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   pushResponse
		wantErr    bool
	}{
		{"delivered", http.StatusOK, pushResponse{OK: true}, false},
		{"api error", http.StatusOK, pushResponse{OK: false, Error: "recipient unknown"}, true},
		{"http error", http.StatusBadGateway, pushResponse{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got pushRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.statusCode)
				_ = json.NewEncoder(w).Encode(tt.response)
			}))
			defer srv.Close()

			sender, err := NewPushSender(srv.URL, "secret-token", "628123456789")
			require.NoError(t, err)

			err = sender.Send(context.Background(), "Visit reminder for 2025-03-10")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "628123456789", got.To)
			assert.Equal(t, "Visit reminder for 2025-03-10", got.Message)
		})
	}
}

func TestNoopSender(t *testing.T) {
	assert.NoError(t, Noop{}.Send(context.Background(), "anything"))
}
