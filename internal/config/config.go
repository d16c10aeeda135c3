package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hisab/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Remote booking collection (rest backend)
	StoreBaseURL string
	StoreTimeout time.Duration

	// Database (sqlite backend)
	SQLiteDBPath string

	// AMQP export pipeline
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets ledger export
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string

	// Engine
	StakeholderShares string
	SortPolicy        string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		StoreBaseURL: getEnv("STORE_BASE_URL", ""),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 10*time.Second),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/hisab.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "hisab"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "booking_events"),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:       getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),

		StakeholderShares: getEnv("STAKEHOLDER_SHARES", ""),
		SortPolicy:        getEnv("SORT_POLICY", string(core.SortEntryFeeDesc)),
	}

	return cfg
}

// ShareRules parses the configured stakeholder split, falling back to the
// built-in distribution when STAKEHOLDER_SHARES is unset. Validate must have
// passed before calling this.
func (c *Config) ShareRules() []core.ShareRule {
	if c.StakeholderShares == "" {
		return core.DefaultShareRules()
	}
	rules, err := core.ParseShareRules(c.StakeholderShares)
	if err != nil {
		return core.DefaultShareRules()
	}
	return rules
}

// Validate checks the whole configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "rest", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "rest" {
		if c.StoreBaseURL == "" {
			errors = append(errors, "store base URL cannot be empty when using rest backend")
		} else if parsed, err := url.Parse(c.StoreBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid store base URL '%s': %v", c.StoreBaseURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid store base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
		if c.StoreTimeout < time.Second {
			errors = append(errors, fmt.Sprintf("invalid store timeout %v: must be at least 1 second", c.StoreTimeout))
		}
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// The percentages-sum-to-100 invariant is enforced here, once, at load
	// time. The engine treats it as a precondition.
	if c.StakeholderShares != "" {
		if _, err := core.ParseShareRules(c.StakeholderShares); err != nil {
			errors = append(errors, fmt.Sprintf("invalid stakeholder shares '%s': %v", c.StakeholderShares, err))
		}
	}

	if !core.SortPolicy(c.SortPolicy).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid sort policy '%s': must be '%s' or '%s'",
			c.SortPolicy, core.SortEntryFeeDesc, core.SortOriginal))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
