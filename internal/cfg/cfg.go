package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Api     *APICfg
	Http    *HTTPConfig
	Redis   *RedisCfg   // nil, если REDIS_ADDR не задан
	Kafka   *KafkaCfg   // nil, если KAFKA_BROKERS не задан
	Minio   *MinIOCfg   // nil, если BUCKET_NAME не задан
	Session *SessionCfg
}

// LogCfg читается отдельно от Config: логгер нужен до загрузки остальной конфигурации.
type LogCfg struct {
	Level       string
	Development bool
}

type APICfg struct {
	BaseURL string // Адрес инвентарного API, например http://localhost:8080
	Timeout time.Duration
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisCfg struct {
	Addr         string
	Password     string
	User         string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	Timeout      time.Duration
	ViewStateTTL time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	QueueSize         int // размер буфера событий аудита
	MaxRetries        int
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет для выгрузки отчетов
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	PresignTTL        time.Duration // Время жизни ссылки на скачивание отчета
	ReportPageSize    int           // Размер страницы при выборке рекомендаций для отчета
	ReportMaxPages    int
}

type SessionCfg struct {
	CookieName    string
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// LoadLogCfg читает настройки логгера.
func LoadLogCfg() *LogCfg {
	dev, err := strconv.ParseBool(getEnvOrDefault("LOG_DEVELOPMENT", "false"))
	if err != nil {
		dev = false
	}

	return &LogCfg{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		Development: dev,
	}
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	api, err := loadAPICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Api:     api,
		Http:    http,
		Redis:   redis,
		Kafka:   kafka,
		Minio:   minio,
		Session: session,
	}, nil
}

func loadAPICfg(log logger.Logger) (*APICfg, error) {
	const (
		defaultTimeout = 15 * time.Second
	)

	baseURL := strings.TrimRight(strings.TrimSpace(getEnv("INVENTORY_API_URL")), "/")
	if baseURL == "" {
		err := fmt.Errorf("INVENTORY_API_URL is required: %w", e.ErrMissingEnvVariable)
		log.Errorf(err, "missing INVENTORY_API_URL")
		return nil, err
	}

	timeout, err := parseDurationEnv("INVENTORY_API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid INVENTORY_API_TIMEOUT")
		return nil, err
	}

	return &APICfg{
		BaseURL: baseURL,
		Timeout: timeout,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8081"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultViewStateTTL = 24 * time.Hour
	)

	addr := getEnv("REDIS_ADDR")
	if addr == "" {
		log.Infof("REDIS_ADDR is not set, view state is kept in memory")
		return nil, nil
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	viewStateTTL, err := parseDurationEnv("VIEW_STATE_TTL", defaultViewStateTTL)
	if err != nil {
		log.Errorf(err, "invalid VIEW_STATE_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:         addr,
		Password:     getEnv("REDIS_PASSWORD"),
		User:         getEnv("REDIS_USER"),
		DB:           db,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		Timeout:      timeout,
		ViewStateTTL: viewStateTTL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "admin-audit"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultQueueSize         = 256
		defaultMaxRetries        = 3
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}
	brokers := strings.Split(brokerStr, ",")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	queueSize, err := parseNonNegativeIntEnv("AUDIT_QUEUE_SIZE", defaultQueueSize)
	if err != nil {
		return nil, e.Wrap("AUDIT_QUEUE_SIZE", err)
	}

	maxRetries, err := parseNonNegativeIntEnv("AUDIT_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("AUDIT_MAX_RETRIES", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		QueueSize:         queueSize,
		MaxRetries:        maxRetries,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL         = false
		defaultEndpoint       = "minio:9000"
		defaultPresignTTL     = 15 * time.Minute
		defaultReportPageSize = 100
		defaultReportMaxPages = 500
	)

	bucket := getEnv("BUCKET_NAME")
	if bucket == "" {
		log.Infof("BUCKET_NAME is not set, report export is disabled")
		return nil, nil
	}

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	presignTTL, err := parseDurationEnv("REPORT_LINK_TTL", defaultPresignTTL)
	if err != nil {
		log.Errorf(err, "invalid REPORT_LINK_TTL")
		return nil, err
	}

	pageSize, err := parseIntEnv("REPORT_PAGE_SIZE", defaultReportPageSize)
	if err != nil {
		log.Errorf(err, "invalid REPORT_PAGE_SIZE")
		return nil, err
	}

	maxPages, err := parseIntEnv("REPORT_MAX_PAGES", defaultReportMaxPages)
	if err != nil {
		log.Errorf(err, "invalid REPORT_MAX_PAGES")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        bucket,
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		PresignTTL:        presignTTL,
		ReportPageSize:    pageSize,
		ReportMaxPages:    maxPages,
	}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const (
		defaultCookieName    = "admin_session"
		defaultIdleTTL       = 30 * time.Minute
		defaultSweepInterval = time.Minute
	)

	idleTTL, err := parseDurationEnv("SESSION_IDLE_TTL", defaultIdleTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_IDLE_TTL")
		return nil, err
	}

	sweepInterval, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		log.Errorf(err, "invalid SESSION_SWEEP_INTERVAL")
		return nil, err
	}

	return &SessionCfg{
		CookieName:    getEnvOrDefault("SESSION_COOKIE", defaultCookieName),
		IdleTTL:       idleTTL,
		SweepInterval: sweepInterval,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

// parseNonNegativeIntEnv - parseIntEnv для размеров и счетчиков, где отрицательное значение недопустимо.
func parseNonNegativeIntEnv(key string, defaultValue int) (int, error) {
	intValue, err := parseIntEnv(key, defaultValue)
	if err != nil {
		return defaultValue, err
	}
	if intValue < 0 {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
