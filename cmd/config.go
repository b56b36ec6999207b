package cmd

import (
	"fmt"
	"strconv"

	"rentalorders/internal/pkg/errs"
)

// Config carries the runtime settings of the service. An empty DBHost
// selects the in-memory store and an empty KafkaHost disables event
// publishing, so the binary runs with no external dependencies at all.
type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	ConfirmWorkers         int
}

// Validate checks the settings that have no workable fallback.
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return errs.NewValueIsRequiredError("HTTP_PORT")
	}
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("HTTP_PORT", err)
	}
	if c.ConfirmWorkers < 1 {
		return errs.NewValueIsInvalidError("CONFIRM_WORKERS")
	}
	if c.DBHost != "" && c.DBName == "" {
		return errs.NewValueIsRequiredError("DB_NAME")
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		return errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC")
	}
	return nil
}

// PostgresDSN builds the connection string for the configured database.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
