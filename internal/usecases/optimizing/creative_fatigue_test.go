package optimizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-optimizer-api/internal/domain"
)

func TestCreativeFatigueDetector_Detect(t *testing.T) {
	detector := NewCreativeFatigueDetector(DefaultThresholds())

	tests := []struct {
		name     string
		records  []domain.RawAdSetMetrics
		validate func(t *testing.T, recs []domain.Recommendation)
	}{
		{
			name: "Queda de 50% no CTR - prioridade alta com gasto em risco",
			records: []domain.RawAdSetMetrics{
				{
					AdSetID:        "as_1",
					DateStart:      "2024-01-01",
					DateStop:       "2024-01-10",
					Spend:          dec("100"),
					Impressions:    10000,
					Clicks:         100,
					PreviousPeriod: &domain.PeriodMetrics{Impressions: 10000, Clicks: 200},
				},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				require.Len(t, recs, 1)
				assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
				assert.Equal(t, domain.RecommendationCreativeAlert, recs[0].Type)
				assert.Equal(t, 95, recs[0].Confidence)
				assertNullDecimal(t, "0.01", recs[0].DetectedValue)
				assertNullDecimal(t, "0.02", recs[0].BenchmarkValue)
				assertNullDecimal(t, "70", recs[0].EstimatedSavings)
			},
		},
		{
			name: "Queda exatamente no limite de 25% - sinaliza",
			records: []domain.RawAdSetMetrics{
				{
					AdSetID:        "as_2",
					Spend:          dec("70"),
					Impressions:    10000,
					Clicks:         150,
					PreviousPeriod: &domain.PeriodMetrics{Impressions: 10000, Clicks: 200},
				},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				require.Len(t, recs, 1)
				assert.Equal(t, 75, recs[0].Confidence)
				assert.False(t, recs[0].EstimatedSavings.Valid)
			},
		},
		{
			name: "Queda de 20% - nenhuma recomendação",
			records: []domain.RawAdSetMetrics{
				{
					AdSetID:        "as_3",
					Spend:          dec("70"),
					Impressions:    10000,
					Clicks:         160,
					PreviousPeriod: &domain.PeriodMetrics{Impressions: 10000, Clicks: 200},
				},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				assert.Empty(t, recs)
			},
		},
		{
			name: "Sem linha de base - CTR baixo com gasto acima da mediana vira prioridade média",
			records: []domain.RawAdSetMetrics{
				{AdSetID: "as_low", Spend: dec("300"), Impressions: 10000, Clicks: 50},
				{AdSetID: "as_mid", Spend: dec("100"), Impressions: 10000, Clicks: 200},
				{AdSetID: "as_small", Spend: dec("50"), Impressions: 10000, Clicks: 60},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				require.Len(t, recs, 1)
				assert.Equal(t, "as_low", recs[0].RelatedEntityID)
				assert.Equal(t, domain.PriorityMedium, recs[0].Priority)
				assert.LessOrEqual(t, recs[0].Confidence, 60)
				assert.Equal(t, 48, recs[0].Confidence)
				assert.False(t, recs[0].EstimatedSavings.Valid)
			},
		},
		{
			name: "Sem linha de base - frequência alta aumenta a confiança",
			records: []domain.RawAdSetMetrics{
				{AdSetID: "as_low", Spend: dec("300"), Impressions: 10000, Clicks: 50, Frequency: dec("3.5")},
				{AdSetID: "as_mid", Spend: dec("100"), Impressions: 10000, Clicks: 200},
				{AdSetID: "as_small", Spend: dec("50"), Impressions: 10000, Clicks: 60},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				require.Len(t, recs, 1)
				assert.Equal(t, domain.PriorityMedium, recs[0].Priority)
				assert.Equal(t, 53, recs[0].Confidence)
				assert.Contains(t, recs[0].Message, "frequency of 3.5")
			},
		},
		{
			name: "Sem linha de base - frequência alta sem gasto acima da mediana é ignorada",
			records: []domain.RawAdSetMetrics{
				{AdSetID: "as_freq", Spend: dec("40"), Impressions: 8000, Clicks: 20, Frequency: dec("3.5")},
				{AdSetID: "as_big", Spend: dec("200"), Impressions: 10000, Clicks: 200},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				assert.Empty(t, recs)
			},
		},
		{
			name: "Sem linha de base e sem exposição alta - ignorado",
			records: []domain.RawAdSetMetrics{
				{AdSetID: "as_only", Spend: dec("40"), Impressions: 8000, Clicks: 20},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				assert.Empty(t, recs)
			},
		},
		{
			name: "Zero impressões - ignorado",
			records: []domain.RawAdSetMetrics{
				{AdSetID: "as_zero", Spend: dec("500"), Frequency: dec("9")},
				{AdSetID: "as_other", Spend: dec("10"), Impressions: 100, Clicks: 5},
			},
			validate: func(t *testing.T, recs []domain.Recommendation) {
				assert.Empty(t, recs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := detector.Detect(EnrichAll(tt.records), domain.ModuleConfig{})
			require.NoError(t, err)
			for _, rec := range recs {
				assert.Less(t, rec.Confidence, 100)
			}
			tt.validate(t, recs)
		})
	}
}
