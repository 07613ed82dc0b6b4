package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestGeminiClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "the prompt")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiReply(`{"score": 20}`)))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-2.5-flash", 10*time.Second, logrus.New())
	client.baseURL = server.URL

	text, err := client.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"score": 20}`, text)
}

func TestGeminiClient_Generate_FallsBackToV1(t *testing.T) {
	var v1betaCalled, v1Called bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1beta/models/gemini-2.5-flash:generateContent":
			v1betaCalled = true
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"message":"model not found"}}`))
		case "/v1/models/gemini-2.5-flash:generateContent":
			v1Called = true
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(geminiReply("from v1")))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-2.5-flash", 10*time.Second, logrus.New())
	client.baseURL = server.URL

	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "from v1", text)
	assert.True(t, v1betaCalled)
	assert.True(t, v1Called)
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", "gemini-2.5-flash", 10*time.Second, logrus.New())
	client.baseURL = server.URL

	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiClient_Configured(t *testing.T) {
	logger := logrus.New()

	assert.True(t, NewGeminiClient("key", "m", 0, logger).Configured())
	assert.False(t, NewGeminiClient("", "m", 0, logger).Configured())
}
