// Package jobqueue publishes deferred jobs through a QStash-compatible
// HTTP queue. The queue calls back into the service's internal job routes
// with the forwarded job token.
package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/birdieboard/birdieboard/internal/platform/logging"
	"github.com/birdieboard/birdieboard/internal/platform/resilience"
	"github.com/birdieboard/birdieboard/internal/usecase"
)

const feedBackfillPath = "/v1/internal/jobs/feed-backfill"

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	Breaker          resilience.CircuitBreakerConfig
}

type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	breaker          *resilience.CircuitBreaker
	logger           *logging.Logger
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) *QStashPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	var breaker *resilience.CircuitBreaker
	if cfg.Breaker.Enabled {
		breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}

	return &QStashPublisher{
		client:           &http.Client{Timeout: timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		breaker:          breaker,
		logger:           logger,
	}
}

type feedBackfillJob struct {
	RoundID string `json:"round_id"`
}

// EnqueueFeedBackfill schedules a feed regeneration job for a finished
// round. The round id doubles as the deduplication key so repeated finish
// failures collapse into one queued job.
func (p *QStashPublisher) EnqueueFeedBackfill(ctx context.Context, roundID string) error {
	return p.Enqueue(ctx, feedBackfillPath, feedBackfillJob{RoundID: roundID}, 0, "feed-backfill:"+roundID)
}

func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return errors.New("job path is required")
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return errors.Wrap(err, "invalid job queue base url")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return errors.Wrap(err, "invalid job queue target base url")
	}

	if p.breaker != nil {
		if allowErr := p.breaker.Allow(); allowErr != nil {
			return errors.Mark(errors.Wrap(allowErr, "job queue unavailable"), usecase.ErrDependencyUnavailable)
		}
	}

	targetURL := targetBaseURL + path
	publishURL := baseURL + "/v2/publish/" + targetURL

	bodyPayload := payload
	if bodyPayload == nil {
		bodyPayload = map[string]any{}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	encoded, err := sonic.Marshal(bodyPayload)
	if err != nil {
		return errors.Wrap(err, "marshal job payload")
	}
	if _, err := buf.Write(encoded); err != nil {
		return errors.Wrap(err, "buffer job payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(buf.String()))
	if err != nil {
		return errors.Wrap(err, "create job queue request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		req.Header.Set("Upstash-Delay", normalizeDelay(delay))
	}
	if strings.TrimSpace(deduplicationID) != "" {
		req.Header.Set("Upstash-Deduplication-Id", strings.TrimSpace(deduplicationID))
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.recordFailure()
		return errors.Mark(errors.Wrapf(err, "publish job target_url=%s", targetURL), usecase.ErrDependencyUnavailable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		p.recordFailure()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf("publish job status=%d target_url=%s body=%s",
			resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
	}
	p.recordSuccess()

	p.logger.InfoContext(ctx, "job published",
		"path", path, "delay", normalizeDelay(delay), "deduplication_id", deduplicationID)
	return nil
}

func (p *QStashPublisher) recordSuccess() {
	if p.breaker != nil {
		p.breaker.RecordSuccess()
	}
}

func (p *QStashPublisher) recordFailure() {
	if p.breaker != nil {
		p.breaker.RecordFailure()
	}
}

func normalizeDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.Newf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", errors.New("base url host is required")
	}
	return strings.TrimRight(raw, "/"), nil
}
