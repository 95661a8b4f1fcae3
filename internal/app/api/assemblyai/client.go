// Package assemblyai drives one upload-and-transcribe job against the
// AssemblyAI REST API: upload the raw bytes, submit a transcript job, then
// poll on a fixed interval until the job reaches a terminal state or the
// wall-clock deadline passes.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"voicescribe/internal/app/errors"
	"voicescribe/internal/app/model"
	"voicescribe/internal/metrics"
)

// Config represents configuration for the AssemblyAI client.
type Config struct {
	APIKey       string
	BaseURL      string        // default https://api.assemblyai.com/v2
	PollInterval time.Duration // delay between status polls
	PollTimeout  time.Duration // wall-clock ceiling for one job
	HTTPTimeout  time.Duration // per-request transport timeout
}

// Client talks to the AssemblyAI v2 API.
type Client struct {
	config  Config
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewClient creates a client with defaults filled in.
func NewClient(config Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.assemblyai.com/v2"
	}
	if config.PollInterval == 0 {
		config.PollInterval = 3 * time.Second
	}
	if config.PollTimeout == 0 {
		config.PollTimeout = 120 * time.Second
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 30 * time.Second
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.HTTPTimeout},
		logger:  logger,
		metrics: m,
	}
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type submitRequest struct {
	AudioURL          string `json:"audio_url"`
	LanguageDetection bool   `json:"language_detection"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type transcriptResponse struct {
	ID     string          `json:"id"`
	Status model.JobStatus `json:"status"`
	Text   string          `json:"text,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Transcribe runs one job to a terminal state and returns the transcript.
// A completed job with no detectable speech yields the sentinel text, so the
// result is always non-empty on success. When the deadline passes the job is
// abandoned locally, not cancelled with the provider.
func (c *Client) Transcribe(ctx context.Context, audio []byte, sourceLabel string) (string, error) {
	c.logger.Info("starting AssemblyAI transcription",
		"source", sourceLabel,
		"size_bytes", len(audio),
	)

	audioURL, err := c.upload(ctx, audio)
	if err != nil {
		return "", err
	}

	job, err := c.submit(ctx, audioURL)
	if err != nil {
		return "", err
	}
	c.logger.Info("transcription job submitted", "job_id", job.ProviderID)

	return c.poll(ctx, job)
}

// upload pushes the raw audio bytes to the ingestion endpoint.
func (c *Client) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/upload", bytes.NewReader(audio))
	if err != nil {
		return "", errors.Wrap(err, errors.KindUpstream, "building upload request")
	}
	req.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.KindUpstream, "AssemblyAI upload request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Upstream("AssemblyAI upload", resp.StatusCode, string(body))
	}

	var upload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return "", errors.Wrap(err, errors.KindUpstream, "decoding upload response")
	}
	return upload.UploadURL, nil
}

// submit requests a transcription job for an uploaded resource. Language
// detection is always on.
func (c *Client) submit(ctx context.Context, audioURL string) (*model.Job, error) {
	payload, err := json.Marshal(submitRequest{
		AudioURL:          audioURL,
		LanguageDetection: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "encoding transcript request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "building transcript request")
	}
	req.Header.Set("Authorization", c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "AssemblyAI transcript request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Upstream("transcription request", resp.StatusCode, string(body))
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "decoding transcript response")
	}

	return &model.Job{
		ProviderID:  submitted.ID,
		Status:      model.JobStatusQueued,
		SubmittedAt: time.Now(),
	}, nil
}

// poll queries job status on a fixed interval until the job is terminal or
// the deadline passes. Transport failures during polling are not retried.
func (c *Client) poll(ctx context.Context, job *model.Job) (string, error) {
	deadline := job.SubmittedAt.Add(c.config.PollTimeout)

	for time.Now().Before(deadline) {
		time.Sleep(c.config.PollInterval)

		c.metrics.PollCycles.Inc()
		status, err := c.fetchTranscript(ctx, job.ProviderID)
		if err != nil {
			return "", err
		}
		job.Status = status.Status
		c.logger.Debug("transcription status", "job_id", job.ProviderID, "status", status.Status)

		switch status.Status {
		case model.JobStatusCompleted:
			if status.Text == "" {
				return model.SentinelNoSpeech, nil
			}
			return status.Text, nil
		case model.JobStatusError:
			return "", errors.UpstreamJob(status.Error)
		}
	}

	// The job keeps running on the provider side; it is only abandoned here.
	return "", errors.Timeout("transcription", c.config.PollTimeout.String())
}

func (c *Client) fetchTranscript(ctx context.Context, id string) (*transcriptResponse, error) {
	url := fmt.Sprintf("%s/transcript/%s", c.config.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "building poll request")
	}
	req.Header.Set("Authorization", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "AssemblyAI poll request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Upstream("polling", resp.StatusCode, string(body))
	}

	var status transcriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, errors.Wrap(err, errors.KindUpstream, "decoding poll response")
	}
	return &status, nil
}
