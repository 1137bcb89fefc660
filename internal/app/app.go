package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/production-admin/internal/cfg"
	v1Http "github.com/DRSN-tech/production-admin/internal/delivery/v1/http"
	inventoryAPI "github.com/DRSN-tech/production-admin/internal/infrastructure/inventory-api"
	"github.com/DRSN-tech/production-admin/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/production-admin/internal/infrastructure/minio"
	"github.com/DRSN-tech/production-admin/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/production-admin/internal/repository/minio"
	"github.com/DRSN-tech/production-admin/internal/repository/redis"
	redisConv "github.com/DRSN-tech/production-admin/internal/repository/redis/converter"
	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/DRSN-tech/production-admin/pkg/clients"
	"github.com/DRSN-tech/production-admin/pkg/closer"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	topicTimeout    = 10 * time.Second
)

// App собирает BFF админки: клиенты инвентарного API, хранилище состояния сессий,
// аудит в Kafka, выгрузку отчетов в MinIO и HTTP-сервер.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	closer   *closer.Closer
	registry *usecase.WorkspaceRegistry
	audit    *kafka.AuditWorker // nil, если Kafka не настроена
	server   *v1Http.Server

	// ctx живет до начала остановки; на нем работают фоновые задачи.
	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
		ctx:    ctx,
		cancel: cancel,
	}
	// Регистрируется первым, поэтому отменяется последним, после остановки сервера.
	a.closer.AddFunc("background tasks", func() error {
		cancel()
		return nil
	})

	if err := a.init(); err != nil {
		cancel()
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if closeErr := a.closer.Close(closeCtx); closeErr != nil {
			log.Warnf("%v", closeErr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	api := newInventoryAPI(a.cfg.Api)

	viewStates, err := a.initViewStates()
	if err != nil {
		return err
	}

	audit, err := a.initAudit()
	if err != nil {
		return err
	}

	reports, err := a.initReports(api.Suggestions, audit)
	if err != nil {
		return err
	}

	a.registry = usecase.NewWorkspaceRegistry(api, viewStates, a.cfg.Session.IdleTTL, a.logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.cfg.Session.CookieName, a.logger)
	router.Init(a.registry, reports, audit)

	a.server = v1Http.NewServer(router.Handler(), a.cfg.Http)

	return nil
}

func newInventoryAPI(cfg *config.APICfg) usecase.InventoryAPI {
	client := inventoryAPI.NewClient(cfg)

	return usecase.InventoryAPI{
		Products:            inventoryAPI.NewProductClient(client),
		RawMaterials:        inventoryAPI.NewRawMaterialClient(client),
		ProductRawMaterials: inventoryAPI.NewProductRawMaterialClient(client),
		Suggestions:         inventoryAPI.NewProductionSuggestionClient(client),
	}
}

// initViewStates выбирает хранилище фильтров сессий: Redis, если он настроен, иначе память процесса.
func (a *App) initViewStates() (usecase.ViewStateRepository, error) {
	if a.cfg.Redis == nil {
		a.logger.Infof("Redis is not configured, view state is kept in memory")
		return memory.NewViewStateRepo(a.cfg.Session.IdleTTL), nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", redisClient.Close)

	ctx, cancel := context.WithTimeout(a.ctx, startupTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewViewStateRepo(redisClient, redisConv.NewViewStateConverter(), a.cfg.Redis, a.logger), nil
}

// initAudit поднимает продюсер Kafka и воркер аудита. Без Kafka события отбрасываются.
func (a *App) initAudit() (usecase.AuditPublisher, error) {
	if a.cfg.Kafka == nil {
		a.logger.Infof("Kafka is not configured, audit events are discarded")
		return usecase.NopAuditPublisher{}, nil
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddFunc("kafka producer", producer.Close)

	if err := producer.EnsureTopic(topicTimeout); err != nil {
		a.logger.Warnf("failed to ensure audit topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	a.audit = kafka.NewAuditWorker(producer, a.logger, a.cfg.Kafka.QueueSize, a.cfg.Kafka.MaxRetries)

	return a.audit, nil
}

// initReports поднимает выгрузку отчетов в MinIO. Без MinIO возвращается nil и выгрузка отвечает 503.
func (a *App) initReports(suggestions usecase.ProductionSuggestionAPI, audit usecase.AuditPublisher) (usecase.ReportUC, error) {
	if a.cfg.Minio == nil {
		a.logger.Infof("MinIO is not configured, report export is disabled")
		return nil, nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx, cancel := context.WithTimeout(a.ctx, startupTimeout)
	defer cancel()

	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	reportRepo := s3Repo.NewReportRepo(minioClient, a.cfg.Minio)
	reportsInfra := minioInfra.NewMinioInfrastructure(reportRepo, a.cfg.Minio, a.logger, a.ctx)
	a.closer.Add("minio cleanup", reportsInfra.WaitForCleanup)

	return usecase.NewReportUC(
		suggestions,
		reportsInfra,
		audit,
		a.cfg.Minio.ReportPageSize,
		a.cfg.Minio.ReportMaxPages,
		a.logger,
	), nil
}

// Run запускает фоновые задачи и HTTP-сервер и блокируется до сигнала остановки или ошибки сервера.
func (a *App) Run() error {
	go a.registry.Run(a.ctx, a.cfg.Session.SweepInterval)

	if a.audit != nil {
		a.audit.Start(a.ctx)
		a.closer.AddFunc("audit worker", func() error {
			a.audit.Stop()
			return nil
		})
	}

	// Сервер останавливается первым: closer работает в порядке LIFO.
	a.closer.Add("http server", a.server.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()

	return appErr
}

func (a *App) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("%v", err)
	}

	a.logger.Infof("Application shutdown complete")
}
