package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// App holds process-wide settings, loaded once at startup
type App struct {
	Port string `envconfig:"PORT" default:"3000"`
	Env  string `envconfig:"ENV" default:"dev"`

	// DB
	DBDriver      string `envconfig:"DB_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"ecommerce"`

	// JWT
	JWTSecret        string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	RegisterTokenTTL time.Duration `envconfig:"REGISTER_TOKEN_TTL" default:"1h"`
	LoginTokenTTL    time.Duration `envconfig:"LOGIN_TOKEN_TTL" default:"24h"`

	// HTTP
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Mail
	MailProvider     string `envconfig:"MAIL_PROVIDER"`
	PostmarkAPIToken string `envconfig:"POSTMARK_API_TOKEN"`
	SendgridAPIKey   string `envconfig:"SENDGRID_API_KEY"`
	EmailSender      string `envconfig:"EMAIL_SENDER"`

	// Tracing
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file and then the environment
func Load() (App, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
