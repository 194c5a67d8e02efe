package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port     string
	LogLevel string

	DataBackend string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	// MemoryDataFile persists the memory backend between restarts. Empty keeps it in RAM only.
	MemoryDataFile string

	OperatorWorkers int
	SessionTTL      time.Duration

	// AMQPURL enables change events when set.
	AMQPURL      string
	AMQPExchange string
}

// LoadDotEnv loads variables from the given files into the environment
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             "9446",
		LogLevel:         "info",
		DataBackend:      BackendPostgres,
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		OperatorWorkers:  4,
		SessionTTL:       24 * time.Hour,
		AMQPExchange:     "budget",
	}

	setString(&env.Port, "PORT")
	setString(&env.LogLevel, "LOG_LEVEL")
	setString(&env.DataBackend, "DATA_BACKEND")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.MemoryDataFile, "MEMORY_DATA_FILE")
	setString(&env.AMQPURL, "AMQP_URL")
	setString(&env.AMQPExchange, "AMQP_EXCHANGE")

	if v := os.Getenv("OPERATOR_WORKERS"); len(v) != 0 {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_WORKERS: %w", err)
		}
		env.OperatorWorkers = workers
	}

	if v := os.Getenv("SESSION_TTL"); len(v) != 0 {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL: %w", err)
		}
		env.SessionTTL = ttl
	}

	return &env, nil
}

func setString(field *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*field = v
	}
}

// PostgresConnectionString builds the lib/pq DSN.
func (c *Config) PostgresConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.PostgresAddress == "" || c.PostgresDB == "" {
			problems = append(problems, "postgres address and database are required when using postgres backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]", c.DataBackend, BackendPostgres, BackendMemory))
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator workers %d: must be at least 1", c.OperatorWorkers))
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "session TTL must be positive")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
