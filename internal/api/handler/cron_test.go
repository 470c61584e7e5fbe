package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-optimizer-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-optimizer-api/internal/scheduler"
	"github.com/vfg2006/traffic-optimizer-api/pkg/apiErrors"
)

type fakeDigestRunner struct {
	triggered int
	entries   []scheduler.DigestEntry
}

func (f *fakeDigestRunner) TriggerManualRun() {
	f.triggered++
}

func (f *fakeDigestRunner) GetStatus() map[string]any {
	return map[string]any{"digest_enabled": true}
}

func (f *fakeDigestRunner) Entries() []scheduler.DigestEntry {
	return f.entries
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name     string
		cronType string
		runner   *fakeDigestRunner
		validate func(t *testing.T, rec *httptest.ResponseRecorder, runner *fakeDigestRunner)
	}{
		{
			name:     "Dispara o resumo de otimização",
			cronType: CronJobTypeDigest,
			runner:   &fakeDigestRunner{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, runner *fakeDigestRunner) {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.Equal(t, 1, runner.triggered)
			},
		},
		{
			name:     "Tipo all dispara o resumo",
			cronType: CronJobTypeAll,
			runner:   &fakeDigestRunner{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, runner *fakeDigestRunner) {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.Equal(t, 1, runner.triggered)
			},
		},
		{
			name:     "Tipo desconhecido",
			cronType: "meta-sync",
			runner:   &fakeDigestRunner{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, runner *fakeDigestRunner) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
				assert.Zero(t, runner.triggered)
			},
		},
		{
			name:     "Resumo não configurado",
			cronType: CronJobTypeDigest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, _ *fakeDigestRunner) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := CronJobServices{}
			if tt.runner != nil {
				services.OptimizationDigestService = tt.runner
			}
			rt := router.New(router.WithRoutes(CronJobs(services)...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/"+tt.cronType+"/run", nil))

			tt.validate(t, rec, tt.runner)
		})
	}
}

func TestGetDigest(t *testing.T) {
	runner := &fakeDigestRunner{
		entries: []scheduler.DigestEntry{
			{CampaignID: "111", RunID: "run-1", AdSetsAnalyzed: 4, AnalyzedAt: time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)},
		},
	}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{OptimizationDigestService: runner})...))

	t.Run("Lista as entradas do resumo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/optimization-insights/digest", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Campaigns []scheduler.DigestEntry `json:"campaigns"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Campaigns, 1)
		assert.Equal(t, "111", body.Campaigns[0].CampaignID)
	})

	t.Run("Status inclui o resumo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"optimization-digest":{"digest_enabled":true}`)
	})
}
