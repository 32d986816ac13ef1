package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Render      Render      `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	MetaAdsSync MetaAdsSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port" validate:"required"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"dive,url"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver" validate:"required"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url" validate:"required"`
	User     string `mapstructure:"database_user" validate:"required"`
}

// Meta concentra o acesso à Graph API. O cliente recebe esta struct na construção.
type Meta struct {
	BaseURL           string    `mapstructure:"meta_base_url" validate:"required,url"`
	URL               string    `mapstructure:"-"`
	Version           string    `mapstructure:"meta_version" validate:"required"`
	AccessToken       string    `mapstructure:"meta_access_token"`
	AppID             string    `mapstructure:"meta_app_id"`
	AppSecret         string    `mapstructure:"meta_app_secret"`
	LongLivedToken    string    `mapstructure:"meta_long_lived_token"`
	TokenExpiresAt    time.Time `mapstructure:"-"`
	TimeoutSeconds    int       `mapstructure:"meta_timeout_seconds" validate:"min=1"`
	MaxRetries        int       `mapstructure:"meta_max_retries" validate:"min=0,max=10"`
	RequestsPerSecond float64   `mapstructure:"meta_requests_per_second" validate:"gt=0"`
	PageLimit         int       `mapstructure:"meta_page_limit" validate:"min=1,max=500"`
	AutoRefreshToken  bool      `mapstructure:"meta_auto_refresh_token"`
}

func (m Meta) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret" validate:"required"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours" validate:"min=1"`
}

type MetaAdsSync struct {
	CronSchedule   string `mapstructure:"meta_ads_sync_cron" validate:"required"`
	LookbackDays   int    `mapstructure:"meta_ads_sync_lookback_days" validate:"min=1,max=1095"`
	AccountTimeout int    `mapstructure:"meta_ads_sync_account_timeout_minutes" validate:"min=1"`
	Enabled        bool   `mapstructure:"meta_ads_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,https://app.campaignhub.com.br")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaignhub?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v21.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_ACCESS_TOKEN", "") // ONLY LOCAL
	viper.SetDefault("META_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_MAX_RETRIES", 3)
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("META_PAGE_LIMIT", 100)
	viper.SetDefault("META_AUTO_REFRESH_TOKEN", false)

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("META_ADS_SYNC_CRON", "0 3 * * *")           // Todos os dias às 3h da manhã
	viper.SetDefault("META_ADS_SYNC_LOOKBACK_DAYS", 30)           // Janela de insights
	viper.SetDefault("META_ADS_SYNC_ACCOUNT_TIMEOUT_MINUTES", 15) // Limite por conta
	viper.SetDefault("META_ADS_SYNC_ENABLED", false)              // Habilitar sincronização agendada

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
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

	config.Complete()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Complete preenche os campos derivados
func (c *Config) Complete() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	if c.Meta.LongLivedToken != "" && c.Meta.AccessToken == "" {
		c.Meta.AccessToken = c.Meta.LongLivedToken
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: configuração inválida: %w", err)
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
