package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	CreditThreshold      decimal.Decimal
	CreditMinScore       float64
	CheckTimeout         time.Duration
	ComplianceRestricted []string
	// CompliancePriorities are the priorities whose destinations are screened.
	CompliancePriorities []order.Priority

	NodeID                int64
	AuditSchedule         string
	ReplenishmentSchedule string
}

// UsesDatabase is false when DB_HOST is empty; the in-memory store is used then.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading envFile if it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.status.changed"),
		ComplianceRestricted:   splitList(os.Getenv("COMPLIANCE_RESTRICTED")),
		AuditSchedule:          os.Getenv("AUDIT_SCHEDULE"),
		ReplenishmentSchedule:  os.Getenv("REPLENISHMENT_SCHEDULE"),
	}

	var errs []error
	var err error

	if cfg.CreditThreshold, err = decimal.NewFromString(getEnv("CREDIT_THRESHOLD", "50000000")); err != nil {
		errs = append(errs, fmt.Errorf("CREDIT_THRESHOLD: %w", err))
	}
	if cfg.CreditMinScore, err = strconv.ParseFloat(getEnv("CREDIT_MIN_SCORE", "0.2"), 64); err != nil {
		errs = append(errs, fmt.Errorf("CREDIT_MIN_SCORE: %w", err))
	}
	for _, p := range splitList(getEnv("COMPLIANCE_PRIORITIES", "Critical")) {
		priority, err := order.ParsePriority(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("COMPLIANCE_PRIORITIES: %w", err))
			continue
		}
		cfg.CompliancePriorities = append(cfg.CompliancePriorities, priority)
	}
	if cfg.CheckTimeout, err = time.ParseDuration(getEnv("CHECK_TIMEOUT", "2s")); err != nil {
		errs = append(errs, fmt.Errorf("CHECK_TIMEOUT: %w", err))
	}
	if cfg.NodeID, err = strconv.ParseInt(getEnv("NODE_ID", "1"), 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("NODE_ID: %w", err))
	}

	if err = errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
