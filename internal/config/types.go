package config

import "time"

// Config holds the server configuration parsed from environment variables.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	RedisURL    string `env:"REDIS_URL,required,notEmpty"`

	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	SessionSecret  string        `env:"SESSION_SECRET"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	AuthRateLimit  string        `env:"AUTH_RATE_LIMIT" envDefault:"10-M"`
	OTPTTL         time.Duration `env:"OTP_TTL" envDefault:"5m"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	AI   AIConfig
	SMTP SMTPConfig

	ExpiryInterval time.Duration `env:"EXPIRY_INTERVAL" envDefault:"1m"`
	FlushInterval  time.Duration `env:"FLUSH_INTERVAL" envDefault:"5s"`
}

// AIConfig configures the generation and embedding client.
type AIConfig struct {
	APIKey              string        `env:"GEMINI_API_KEY,required,notEmpty"`
	GenerationModel     string        `env:"GENERATION_MODEL" envDefault:"gemini-2.0-flash"`
	EmbeddingModel      string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
	EmbeddingDimensions int           `env:"EMBEDDING_DIMENSIONS" envDefault:"768"`
	RequestsPerSecond   float64       `env:"AI_REQUESTS_PER_SECOND" envDefault:"5"`
	Burst               int           `env:"AI_BURST" envDefault:"5"`
	MaxElapsedTime      time.Duration `env:"AI_BACKOFF_MAX_ELAPSED_TIME" envDefault:"60s"`
	InitialInterval     time.Duration `env:"AI_BACKOFF_INITIAL_INTERVAL" envDefault:"1s"`
	PlagiarismThreshold float64       `env:"PLAGIARISM_THRESHOLD" envDefault:"80"`
	PlagiarismNeighbors int           `env:"PLAGIARISM_NEIGHBOURS" envDefault:"5"`
}

// SMTPConfig configures outgoing mail. An empty Host selects the log sender.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"SkillSage <no-reply@skillsage.dev>"`
}

// Flags holds the options of the reembed command.
type Flags struct {
	InterviewID string
	DryRun      bool
}

// returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
