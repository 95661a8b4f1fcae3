package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicescribe/internal/api/middleware"
	v1routes "voicescribe/internal/api/v1/routes"
	"voicescribe/internal/api/v1/services"
	"voicescribe/internal/app/api/assemblyai"
	"voicescribe/internal/app/model"
	"voicescribe/internal/app/repository"
	"voicescribe/internal/app/repository/fallback"
	"voicescribe/internal/metrics"
)

// newProviderStub serves the three AssemblyAI endpoints, completing the job
// with the given text on the second poll.
func newProviderStub(t *testing.T, text string) *httptest.Server {
	polls := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/upload":
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/a"})
		case r.URL.Path == "/transcript" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]string{"id": "job-1"})
		case strings.HasPrefix(r.URL.Path, "/transcript/"):
			polls++
			status := "processing"
			if polls >= 2 {
				status = "completed"
			}
			json.NewEncoder(w).Encode(map[string]string{"status": status, "text": text})
		default:
			http.NotFound(w, r)
		}
	}))
}

type testEnv struct {
	router *gin.Engine
	facade *repository.Facade
}

func newTestEnv(t *testing.T, providerURL string, keyPresent bool, resolver middleware.IdentityResolver) *testEnv {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewMetrics(prometheus.NewRegistry())

	store, err := fallback.NewStore(filepath.Join(t.TempDir(), "fallback-db.json"))
	require.NoError(t, err)
	facade := repository.NewFacade(nil, store, logger, m)

	client := assemblyai.NewClient(assemblyai.Config{
		APIKey:       "test-key",
		BaseURL:      providerURL,
		PollInterval: time.Millisecond,
		PollTimeout:  time.Second,
	}, logger, m)

	present := func() bool { return keyPresent }
	container := &v1routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(client, facade, present, logger, m),
		HistoryService:       services.NewHistoryService(facade, logger),
		ProviderKeyPresent:   present,
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.OptionalIdentity(resolver))
	v1routes.RegisterRoutes(router, container, logger)

	return &testEnv{router: router, facade: facade}
}

func multipartAudio(t *testing.T, fieldFile, contentType string, payload []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="audio"; filename="`+fieldFile+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func doTranscribe(t *testing.T, env *testEnv, contentType string, payload []byte, headers map[string]string) *httptest.ResponseRecorder {
	body, formType := multipartAudio(t, "clip.wav", contentType, payload)
	req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
	req.Header.Set("Content-Type", formType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func historyLength(t *testing.T, env *testEnv) int {
	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success        bool `json:"success"`
		Transcriptions []struct {
			Text string `json:"text"`
		} `json:"transcriptions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return len(resp.Transcriptions)
}

func TestTranscribeWavHelloWorld(t *testing.T) {
	provider := newProviderStub(t, "hello world")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	payload := make([]byte, 1<<20) // 1 MiB
	rec := doTranscribe(t, env, "audio/wav", payload, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Success       bool   `json:"success"`
		Transcription string `json:"transcription"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "hello world", resp.Transcription)

	assert.Equal(t, 1, historyLength(t, env))
}

func TestTranscribeRecordsOwnerFromBearerToken(t *testing.T) {
	provider := newProviderStub(t, "owned text")
	defer provider.Close()

	resolver := func(token string) (string, bool) {
		if token == "valid-token" {
			return "user-42", true
		}
		return "", false
	}
	env := newTestEnv(t, provider.URL, true, resolver)

	rec := doTranscribe(t, env, "audio/wav", []byte("audio"), map[string]string{
		"Authorization": "Bearer valid-token",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	records, err := env.facade.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "user-42", records[0].OwnerID)
}

func TestTranscribeTextPlainRejected(t *testing.T) {
	provider := newProviderStub(t, "never used")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	rec := doTranscribe(t, env, "text/plain", []byte("not audio"), nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "text/plain")

	assert.Equal(t, 0, historyLength(t, env))
}

func TestTranscribeEmptyFileRejected(t *testing.T) {
	provider := newProviderStub(t, "never used")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	rec := doTranscribe(t, env, "audio/wav", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, historyLength(t, env))
}

func TestTranscribeMissingFileRejected(t *testing.T) {
	provider := newProviderStub(t, "never used")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No audio file provided")
}

func TestTranscribeMissingCredentialIsServerError(t *testing.T) {
	provider := newProviderStub(t, "never used")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, false, nil)

	rec := doTranscribe(t, env, "audio/wav", []byte("audio"), nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestTranscribeSentinelForSilentAudio(t *testing.T) {
	provider := newProviderStub(t, "")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	rec := doTranscribe(t, env, "audio/wav", []byte("silence"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.SentinelNoSpeech)
}

func TestHistoryLimitValidation(t *testing.T) {
	provider := newProviderStub(t, "unused")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/history?limit=-3", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearHistory(t *testing.T) {
	provider := newProviderStub(t, "to be cleared")
	defer provider.Close()
	env := newTestEnv(t, provider.URL, true, nil)

	rec := doTranscribe(t, env, "audio/wav", []byte("audio"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, historyLength(t, env))

	req := httptest.NewRequest(http.MethodDelete, "/history", nil)
	del := httptest.NewRecorder()
	env.router.ServeHTTP(del, req)
	require.Equal(t, http.StatusOK, del.Code)
	assert.Contains(t, del.Body.String(), "History cleared successfully")

	assert.Equal(t, 0, historyLength(t, env))
}
