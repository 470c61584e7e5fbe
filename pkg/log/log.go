package log

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é o subconjunto de logrus usado pela aplicação
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	campaignIDKey    contextKey = "campaign_id"
)

type logger struct {
	entry *logrus.Entry
}

// L é a instância global sobre o logger padrão do logrus
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro quando APP_ENV está vazio ou é de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// developmentFields são os campos mantidos em desenvolvimento; os demais são omitidos
var developmentFields = map[string]struct{}{
	string(correlationIDKey): {},
	string(campaignIDKey):    {},
	"method":                 {},
	"path":                   {},
	"status_code":            {},
	"duration_ms":            {},
	"error":                  {},
	"code":                   {},
	"module":                 {},
	"run_id":                 {},
}

func keepInDevelopment(key string) bool {
	if _, ok := developmentFields[key]; ok {
		return true
	}
	return strings.HasPrefix(key, "adset_")
}

func (l *logger) WithField(key string, value any) Logger {
	if IsDevelopment() && !keepInDevelopment(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	kept := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if IsDevelopment() && !keepInDevelopment(k) {
			continue
		}
		kept[k] = v
	}
	if len(kept) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(kept)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

// WithContext copia para o log o ID de correlação e a campanha guardados no contexto
func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	fields := Fields{}
	if correlationID := CorrelationID(ctx); correlationID != "" {
		fields[string(correlationIDKey)] = correlationID
	}
	if campaignID, ok := ctx.Value(campaignIDKey).(string); ok && campaignID != "" {
		fields[string(campaignIDKey)] = campaignID
	}

	return l.WithFields(fields)
}

func (l *logger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *logger) Info(args ...any)  { l.entry.Info(args...) }
func (l *logger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *logger) Error(args ...any) { l.entry.Error(args...) }

// WithCorrelationID adiciona um ID de correlação ao contexto. Um ID vazio gera um novo UUID.
func WithCorrelationID(ctx context.Context, correlationID string) (context.Context, string) {
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	return context.WithValue(ctx, correlationIDKey, correlationID), correlationID
}

// CorrelationID obtém o ID de correlação do contexto
func CorrelationID(ctx context.Context) string {
	correlationID, _ := ctx.Value(correlationIDKey).(string)
	return correlationID
}

// WithCampaignID marca o contexto com a campanha em análise
func WithCampaignID(ctx context.Context, campaignID string) context.Context {
	return context.WithValue(ctx, campaignIDKey, campaignID)
}

// ForContext cria um logger com os campos guardados no contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
