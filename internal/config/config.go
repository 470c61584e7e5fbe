package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Meta               Meta               `mapstructure:",squash"`
	Redis              Redis              `mapstructure:",squash"`
	Optimization       Optimization       `mapstructure:",squash"`
	OptimizationDigest OptimizationDigest `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL               string  `mapstructure:"meta_base_url"`
	URL                   string  `mapstructure:"meta_url"`
	Version               string  `mapstructure:"meta_version"`
	AccessToken           string  `mapstructure:"meta_access_token"`
	RequestTimeoutSeconds int     `mapstructure:"meta_request_timeout_seconds"`
	RequestsPerSecond     float64 `mapstructure:"meta_requests_per_second"`
	PageLimit             int     `mapstructure:"meta_page_limit"`
	LookbackDays          int     `mapstructure:"meta_lookback_days"`
	BreakerFailures       uint32  `mapstructure:"meta_breaker_failures"`
	BreakerTimeoutSeconds int     `mapstructure:"meta_breaker_timeout_seconds"`
}

type Redis struct {
	Enabled     bool          `mapstructure:"redis_enabled"`
	Addr        string        `mapstructure:"redis_addr"`
	Password    string        `mapstructure:"redis_password"`
	DB          int           `mapstructure:"redis_db"`
	SnapshotTTL time.Duration `mapstructure:"redis_snapshot_ttl"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Optimization contém os parâmetros de ajuste dos detectores
type Optimization struct {
	BleedingCriticalMultiplier    float64 `mapstructure:"optimization_bleeding_critical_multiplier"`
	BleedingHighMultiplier        float64 `mapstructure:"optimization_bleeding_high_multiplier"`
	MinSpendFloor                 float64 `mapstructure:"optimization_min_spend_floor"`
	MaxConfidence                 int     `mapstructure:"optimization_max_confidence"`
	FatigueCTRDecline             float64 `mapstructure:"optimization_fatigue_ctr_decline"`
	FatigueCTRFloor               float64 `mapstructure:"optimization_fatigue_ctr_floor"`
	FatigueFrequencyCeiling       float64 `mapstructure:"optimization_fatigue_frequency_ceiling"`
	FatigueForwardWindowDays      int     `mapstructure:"optimization_fatigue_forward_window_days"`
	FatigueHeuristicMaxConfidence int     `mapstructure:"optimization_fatigue_heuristic_max_confidence"`
	ScalingCPAMultiplier          float64 `mapstructure:"optimization_scaling_cpa_multiplier"`
	ScalingROASMultiplier         float64 `mapstructure:"optimization_scaling_roas_multiplier"`
	ScalingBudgetIncrease         float64 `mapstructure:"optimization_scaling_budget_increase"`
	ScalingDiminishingReturns     float64 `mapstructure:"optimization_scaling_diminishing_returns"`
	DefaultTargetROAS             float64 `mapstructure:"optimization_default_target_roas"`
	ParallelDetectors             bool    `mapstructure:"optimization_parallel_detectors"`
}

type OptimizationDigest struct {
	CronSchedule        string `mapstructure:"optimization_digest_cron"`
	RequestDelaySeconds int    `mapstructure:"optimization_digest_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"optimization_digest_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"optimization_digest_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/traffic")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_REQUESTS_PER_SECOND", 4) // limite conservador da Graph API
	viper.SetDefault("META_PAGE_LIMIT", 100)        // ad sets por página
	viper.SetDefault("META_LOOKBACK_DAYS", 14)      // janela padrão da análise
	viper.SetDefault("META_BREAKER_FAILURES", 5)    // falhas seguidas antes de abrir o circuito
	viper.SetDefault("META_BREAKER_TIMEOUT_SECONDS", 60)

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_SNAPSHOT_TTL", "15m")

	viper.SetDefault("OPTIMIZATION_BLEEDING_CRITICAL_MULTIPLIER", 1.5)
	viper.SetDefault("OPTIMIZATION_BLEEDING_HIGH_MULTIPLIER", 1.2)
	viper.SetDefault("OPTIMIZATION_MIN_SPEND_FLOOR", 50)
	viper.SetDefault("OPTIMIZATION_MAX_CONFIDENCE", 95)
	viper.SetDefault("OPTIMIZATION_FATIGUE_CTR_DECLINE", 0.25)
	viper.SetDefault("OPTIMIZATION_FATIGUE_CTR_FLOOR", 0.008)
	viper.SetDefault("OPTIMIZATION_FATIGUE_FREQUENCY_CEILING", 3.0)
	viper.SetDefault("OPTIMIZATION_FATIGUE_FORWARD_WINDOW_DAYS", 7)
	viper.SetDefault("OPTIMIZATION_FATIGUE_HEURISTIC_MAX_CONFIDENCE", 60)
	viper.SetDefault("OPTIMIZATION_SCALING_CPA_MULTIPLIER", 0.7)
	viper.SetDefault("OPTIMIZATION_SCALING_ROAS_MULTIPLIER", 1.3)
	viper.SetDefault("OPTIMIZATION_SCALING_BUDGET_INCREASE", 0.5)
	viper.SetDefault("OPTIMIZATION_SCALING_DIMINISHING_RETURNS", 0.7)
	viper.SetDefault("OPTIMIZATION_DEFAULT_TARGET_ROAS", 4.0)
	viper.SetDefault("OPTIMIZATION_PARALLEL_DETECTORS", true)

	// Defaults para o resumo diário de otimização
	viper.SetDefault("OPTIMIZATION_DIGEST_CRON", "0 7 * * *")        // Todos os dias às 7h da manhã
	viper.SetDefault("OPTIMIZATION_DIGEST_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre campanhas
	viper.SetDefault("OPTIMIZATION_DIGEST_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("OPTIMIZATION_DIGEST_ENABLED", false)           // Habilitar resumo diário

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
