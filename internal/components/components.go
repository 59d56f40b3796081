package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Harissh-lab/arm-scout/internal/api"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/admin"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/hazards"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/stream"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/system"
	"github.com/Harissh-lab/arm-scout/internal/api/handlers/http/vehicle"
	"github.com/Harissh-lab/arm-scout/internal/config"
	"github.com/Harissh-lab/arm-scout/internal/detector"
	"github.com/Harissh-lab/arm-scout/internal/domain"
	"github.com/Harissh-lab/arm-scout/internal/location"
	"github.com/Harissh-lab/arm-scout/internal/mqtt"
	"github.com/Harissh-lab/arm-scout/internal/service"
	"github.com/Harissh-lab/arm-scout/internal/storage"
	"github.com/Harissh-lab/arm-scout/internal/storage/clickhouse"
	"github.com/Harissh-lab/arm-scout/internal/storage/memory"
	"github.com/Harissh-lab/arm-scout/internal/storage/postgres"
	"github.com/Harissh-lab/arm-scout/internal/storage/redis"
	"github.com/Harissh-lab/arm-scout/internal/workers"
	"github.com/Harissh-lab/arm-scout/pkg/logger"
)

const (
	trackerRetry    = 5 * time.Second
	alertQueueSize  = 256
	enqueueTimeout  = 2 * time.Second
	detectorTimeout = 3 * time.Second
)

type Components struct {
	logger *slog.Logger
	cfg    *config.Config

	HttpServer *api.Server
	Service    *service.Service
	Feed       *location.Feed
	Monitor    *workers.ProximityMonitor
	Sweeper    *workers.StaleSweeper
	Hub        *stream.Hub

	AlertQueue service.AlertQueue
	Webhook    *service.WebhookSender
	Poller     *workers.DetectorPoller

	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	MQTT       *mqtt.Client
	ClickHouse *clickhouse.Archive

	unsubs []func()
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{logger: logger, cfg: cfg}

	kv, err := c.initStorage(ctx)
	if err != nil {
		c.ShutdownAll()
		return nil, err
	}
	kv = storage.WithTimeout(kv, cfg.Storage.Timeout)

	c.Feed = location.NewFeed(logger)

	hazardStore := service.NewHazardStore(ctx, kv, logger, service.HazardStoreConfig{
		ResolutionThreshold: cfg.Engine.ResolutionThreshold,
	})
	if cfg.Engine.SeedSampleHazards {
		if n := hazardStore.Seed(ctx, service.SampleHazards(time.Now().UTC())); n > 0 {
			logger.Info("seeded sample hazards", slog.Int("count", n))
		}
	}

	tracker := service.NewTracker(ctx, c.Feed, kv, logger, service.TrackerConfig{
		AcquireTimeout: cfg.Engine.PositionAcquireTimeout,
	})
	detectionLog := service.NewDetectionLog(ctx, kv, logger, cfg.Engine.DetectionLogCap)
	ingestor := service.NewIngestor(tracker, hazardStore, detectionLog, logger, service.IngestorConfig{
		DedupeRadiusMeters: cfg.Engine.DedupeRadiusMeters,
	})
	consensus := service.NewConsensus(hazardStore, logger, service.ConsensusConfig{
		Cooldown: cfg.Engine.VoteCooldown,
		StaleTTL: cfg.Engine.StaleTTL,
	})
	c.Service = service.NewService(tracker, hazardStore, ingestor, consensus, detectionLog)

	c.Monitor = workers.NewProximityMonitor(tracker, hazardStore, logger, workers.ProximityMonitorConfig{
		VehicleID:         cfg.Engine.VehicleID,
		Interval:          cfg.Engine.ProximityInterval,
		AlertRadiusMeters: cfg.Engine.AlertRadiusMeters,
	})
	c.Sweeper = workers.NewStaleSweeper(consensus, cfg.Engine.StaleSweepInterval, logger)

	c.Hub = stream.NewHub(logger)
	c.unsubs = append(c.unsubs, c.Monitor.Subscribe(c.Hub.Broadcast))

	c.initAlertQueue()
	if !cfg.Webhook.Disabled {
		c.Webhook = service.NewWebhookSender(logger, cfg.Webhook, c.AlertQueue, cfg.Engine.AlertRepeatInterval)
		c.unsubs = append(c.unsubs, c.Monitor.Subscribe(c.enqueueAlerts))
	}

	if cfg.MQTT.Enabled {
		if err := c.initMQTT(ctx); err != nil {
			c.ShutdownAll()
			return nil, err
		}
	}

	if cfg.ClickHouse.Enabled {
		logger.Info("Initializing ClickHouse")
		archive, err := clickhouse.Open(ctx, cfg.ClickHouse, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init clickhouse: %w", err)
		}
		c.ClickHouse = archive
		c.unsubs = append(c.unsubs, ingestor.Subscribe(archive.OnDetection))
	}

	if cfg.Detector.Enabled {
		client := detector.NewClient(cfg.Detector.URL, cfg.Detector.Timeout)
		hctx, cancel := context.WithTimeout(ctx, detectorTimeout)
		if h, err := client.Health(hctx); err != nil {
			logger.Warn("detector not reachable yet", slog.String("url", cfg.Detector.URL), slog.Any("error", err))
		} else {
			logger.Info("detector online", slog.String("status", h.Status), slog.Int("classes", len(h.Classes)))
		}
		cancel()
		c.Poller = workers.NewDetectorPoller(client, ingestor, cfg.Detector.PollInterval, logger)
	}

	c.HttpServer = api.NewServer(cfg, logger, api.Handlers{
		Admin:   admin.NewHandler(logger, hazardStore, ingestor, consensus),
		Hazards: hazards.NewHandler(logger, hazardStore, consensus),
		Vehicle: vehicle.NewHandler(logger, ingestor, tracker, c.Monitor),
		System:  system.NewHandler(logger, tracker, hazardStore, cfg.Engine.VehicleID),
		Stream:  c.Hub,
	})
	logger.Info("Initialized server")

	return c, nil
}

func (c *Components) initStorage(ctx context.Context) (storage.KV, error) {
	switch c.cfg.Storage.Driver {
	case config.StoragePostgres:
		c.logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(ctx, c.cfg, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		c.Postgres = pg
		return pg.KV, nil
	case config.StorageRedis:
		c.logger.Info("Initializing Redis")
		r, err := redis.NewRedis(ctx, c.cfg, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = r
		return redis.NewKV(r), nil
	default:
		c.logger.Warn("using in-memory storage; state is lost on restart")
		return memory.New(), nil
	}
}

func (c *Components) initAlertQueue() {
	if c.Redis != nil {
		c.AlertQueue = redis.NewAlertQueue(c.Redis, c.cfg.Redis.AlertQueue)
		return
	}
	c.AlertQueue = memory.NewAlertQueue(alertQueueSize)
}

func (c *Components) enqueueAlerts(batch domain.AlertBatch) error {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()
	return c.AlertQueue.Enqueue(ctx, batch)
}

func (c *Components) initMQTT(ctx context.Context) error {
	c.logger.Info("Initializing MQTT", slog.String("broker", c.cfg.MQTT.Broker))

	client, err := mqtt.NewClient(c.cfg.MQTT, c.logger)
	if err != nil {
		return fmt.Errorf("failed to init mqtt: %w", err)
	}
	c.MQTT = client

	topics := mqtt.NewTopics(c.cfg.MQTT.TopicPrefix)
	svc := c.Service

	sub := mqtt.NewSubscriber(client.Native(), topics, c.Feed, svc.Ingestor, svc.Hazards, svc.Consensus, c.logger)
	if err := sub.SubscribeAll(); err != nil {
		return err
	}

	pub := mqtt.NewPublisher(client.Native(), topics, c.cfg.Engine.AlertRepeatInterval, c.logger)
	c.unsubs = append(c.unsubs,
		c.Monitor.Subscribe(pub.PublishAlerts),
		svc.Ingestor.Subscribe(pub.PublishDetection),
	)
	return nil
}

// Start launches every background loop under wg. They all stop when ctx is done.
func (c *Components) Start(ctx context.Context, wg *sync.WaitGroup) {
	run := func(name string, fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
			c.logger.Info("worker stopped", slog.String("worker", name))
		}()
	}

	run("stream-hub", c.Hub.Run)
	run("position-tracker", func(ctx context.Context) { c.Service.Tracker.Run(ctx, trackerRetry) })
	run("stale-sweeper", c.Sweeper.Run)

	c.Monitor.Start(ctx)
	run("proximity-monitor", func(ctx context.Context) {
		<-ctx.Done()
		c.Monitor.Stop()
		c.Monitor.Wait()
	})

	if c.Webhook != nil {
		run("webhook-sender", c.Webhook.Run)
	}
	if c.Poller != nil {
		run("detector-poller", c.Poller.Run)
	}

	run("http-server", func(ctx context.Context) {
		if err := c.HttpServer.Run(ctx); err != nil {
			c.logger.Error("http server failed", slog.Any("error", err))
		}
	})
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	for _, unsub := range c.unsubs {
		unsub()
	}
	if c.Service != nil {
		c.Service.Tracker.Stop()
	}
	if c.MQTT != nil {
		c.MQTT.Close()
	}
	if c.ClickHouse != nil {
		if err := c.ClickHouse.Close(); err != nil {
			c.logger.Error("ClickHouse close failed", slog.Any("error", err))
		}
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.Any("error", err))
		}
	}

	c.logger.Info("all components stopped", slog.Duration("latency", time.Since(start)))
}
