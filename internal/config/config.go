package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Plaid       PlaidConfig
	Toolhouse   ToolhouseConfig
	LoopMessage LoopMessageConfig
	OpenAI      OpenAIConfig
	Deploy      DeployConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	CookieEncryptKey   string
	SessionCookieName  string
}

type PlaidConfig struct {
	ClientID    string
	Secret      string
	Environment string // "sandbox", "development" or "production"
	RedirectURI string // sandbox/local fallback; deployments derive from host
}

type ToolhouseConfig struct {
	APIKey        string
	DefaultChatID string
}

type LoopMessageConfig struct {
	AuthKey   string
	SecretKey string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

// DeployConfig mirrors the hosting platform's injected variables. The
// redirect URI for OAuth institutions is derived from these at request time.
type DeployConfig struct {
	PlatformEnv string // "production", "preview" or ""
	PlatformURL string // platform-assigned hostname, no scheme
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			CookieEncryptKey:   getEnv("COOKIE_ENCRYPT_KEY", ""),
			SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "portfolioapp_session"),
		},
		Plaid: PlaidConfig{
			ClientID:    getEnv("PLAID_CLIENT_ID", ""),
			Secret:      getEnv("PLAID_SECRET", ""),
			Environment: getEnv("PLAID_ENV", "sandbox"),
			RedirectURI: getEnv("PLAID_SANDBOX_REDIRECT_URI", ""),
		},
		Toolhouse: ToolhouseConfig{
			APIKey:        getEnv("TOOLHOUSE_API_KEY", ""),
			DefaultChatID: getEnv("TOOLHOUSE_CHAT_ID", ""),
		},
		LoopMessage: LoopMessageConfig{
			AuthKey:   getEnv("LOOPMESSAGE_AUTH_KEY", ""),
			SecretKey: getEnv("LOOPMESSAGE_SECRET_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4-turbo"),
		},
		Deploy: DeployConfig{
			PlatformEnv: getEnv("VERCEL_ENV", ""),
			PlatformURL: getEnv("VERCEL_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
