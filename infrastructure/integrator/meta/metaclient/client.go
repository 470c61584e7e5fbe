package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	metadomain "github.com/vfg2006/traffic-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-optimizer-api/internal/config"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrTokenExpired = errors.New("meta access token expired")
	ErrRateLimited  = errors.New("meta api rate limit reached")
)

// TimeRange é o intervalo de datas (inclusivo) de uma consulta de insights
type TimeRange struct {
	Since time.Time
	Until time.Time
}

// Days retorna a quantidade de dias cobertos pelo intervalo
func (t TimeRange) Days() int {
	return int(t.Until.Sub(t.Since).Hours()/24) + 1
}

// Previous retorna o intervalo de mesmo tamanho imediatamente anterior
func (t TimeRange) Previous() TimeRange {
	until := t.Since.AddDate(0, 0, -1)
	return TimeRange{
		Since: until.AddDate(0, 0, -(t.Days() - 1)),
		Until: until,
	}
}

type Client interface {
	GetAdSetInsightsByCampaignID(ctx context.Context, campaignID string, window TimeRange, breakdowns ...string) ([]metadomain.AdSetInsight, error)
}

// APIError é uma resposta de erro da Graph API
type APIError struct {
	StatusCode int
	Response   metadomain.ErrorResponse
	Body       string
}

func (e *APIError) Error() string {
	if e.Response.Error.Code != 0 {
		return fmt.Sprintf("meta api: status %d: code %d: %s", e.StatusCode, e.Response.Error.Code, e.Response.Error.Message)
	}
	return fmt.Sprintf("meta api: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Response.IsTokenExpired():
		return ErrTokenExpired
	case e.Response.IsRateLimited():
		return ErrRateLimited
	}
	return nil
}

type MetaClient struct {
	cfg        *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(cfg *config.Config) Client {
	return newMetaClient(cfg)
}

func newMetaClient(cfg *config.Config) *MetaClient {
	timeout := time.Duration(cfg.Meta.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rps := cfg.Meta.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	failures := cfg.Meta.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breakerTimeout := time.Duration(cfg.Meta.BreakerTimeoutSeconds) * time.Second
	if breakerTimeout <= 0 {
		breakerTimeout = time.Minute
	}

	return &MetaClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "meta-graph-api",
			Timeout: breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: isBreakerSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logrus.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("meta: circuit breaker state changed")
			},
		}),
	}
}

// Erros de requisição do cliente (4xx) não indicam indisponibilidade da API
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode < http.StatusInternalServerError && !apiErr.Response.IsRateLimited()
	}

	return false
}

// get faz um GET respeitando o rate limiter e o circuit breaker e decodifica o corpo em out
func (c *MetaClient) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("erro aguardando rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
		}
		defer resp.Body.Close()

		return c.HandleResponse(resp)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return nil
}

// HandleResponse lê o corpo da resposta e converte respostas de erro em *APIError
func (c *MetaClient) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	if err := json.Unmarshal(body, &apiErr.Response); err != nil {
		logrus.WithField("status", resp.StatusCode).Warn("meta: error response is not valid JSON")
	}

	if apiErr.Response.IsTokenExpired() {
		logrus.WithField("fbtrace_id", apiErr.Response.Error.FBTraceID).
			Error("meta: access token expired, META_ACCESS_TOKEN must be renewed")
	}

	return nil, apiErr
}
