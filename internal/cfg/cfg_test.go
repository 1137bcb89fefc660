package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory:8080/ ")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("BUCKET_NAME", "")

	config, err := Load(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Api.BaseURL != "http://inventory:8080" {
		t.Errorf("BaseURL = %q", config.Api.BaseURL)
	}
	if config.Api.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", config.Api.Timeout)
	}
	if config.Http.Port != "8081" {
		t.Errorf("Port = %q", config.Http.Port)
	}
	if config.Redis != nil || config.Kafka != nil || config.Minio != nil {
		t.Errorf("optional subsystems must be disabled: %+v", config)
	}
	if config.Session.CookieName != "admin_session" {
		t.Errorf("CookieName = %q", config.Session.CookieName)
	}
}

func TestLoadOptionalSubsystems(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory:8080")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("BUCKET_NAME", "reports")

	config, err := Load(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Redis == nil || config.Redis.ViewStateTTL != 24*time.Hour {
		t.Errorf("unexpected redis config %+v", config.Redis)
	}
	if config.Kafka == nil || len(config.Kafka.Brokers) != 2 || config.Kafka.Topic != "admin-audit" {
		t.Errorf("unexpected kafka config %+v", config.Kafka)
	}
	if config.Minio == nil || config.Minio.ReportPageSize != 100 {
		t.Errorf("unexpected minio config %+v", config.Minio)
	}
}

func TestLoadRequiresAPIURL(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "")

	_, err := Load(logger.NewNopLogger())
	if !errors.Is(err, e.ErrMissingEnvVariable) {
		t.Fatalf("expected ErrMissingEnvVariable, got %v", err)
	}
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory:8080")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB_ID", "zero")

	_, err := Load(logger.NewNopLogger())
	if !errors.Is(err, e.ErrIncorrectEnvVariable) {
		t.Fatalf("expected ErrIncorrectEnvVariable, got %v", err)
	}
}

func TestLoadRejectsNegativeAuditSettings(t *testing.T) {
	for _, key := range []string{"AUDIT_QUEUE_SIZE", "AUDIT_MAX_RETRIES"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("INVENTORY_API_URL", "http://inventory:8080")
			t.Setenv("REDIS_ADDR", "")
			t.Setenv("BUCKET_NAME", "")
			t.Setenv("KAFKA_BROKERS", "k1:9092")
			t.Setenv(key, "-1")

			_, err := Load(logger.NewNopLogger())
			if !errors.Is(err, e.ErrIncorrectEnvVariable) {
				t.Fatalf("expected ErrIncorrectEnvVariable, got %v", err)
			}
		})
	}
}

func TestLoadAcceptsZeroAuditQueue(t *testing.T) {
	t.Setenv("INVENTORY_API_URL", "http://inventory:8080")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("BUCKET_NAME", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092")
	t.Setenv("AUDIT_QUEUE_SIZE", "0")

	cfg, err := Load(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Kafka.QueueSize != 0 {
		t.Fatalf("expected unbuffered queue, got %d", cfg.Kafka.QueueSize)
	}
}
