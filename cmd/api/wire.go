package main

import (
	"context"
	"database/sql"
	"fmt"

	"dropout-srv/config"
	configMinio "dropout-srv/config/minio"
	"dropout-srv/config/postgre"
	configRedis "dropout-srv/config/redis"
	"dropout-srv/internal/alert"
	alertRepo "dropout-srv/internal/alert/repository"
	alertMemory "dropout-srv/internal/alert/repository/memory"
	alertPostgres "dropout-srv/internal/alert/repository/postgre"
	alertUsecase "dropout-srv/internal/alert/usecase"
	"dropout-srv/internal/metrics"
	"dropout-srv/internal/notification"
	"dropout-srv/internal/risk"
	"dropout-srv/internal/risk/backend"
	riskUsecase "dropout-srv/internal/risk/usecase"
	"dropout-srv/internal/student"
	studentPostgres "dropout-srv/internal/student/repository/postgre"
	studentUsecase "dropout-srv/internal/student/usecase"
	"dropout-srv/internal/sweeper"
	"dropout-srv/internal/user"
	userPostgres "dropout-srv/internal/user/repository/postgre"
	userUsecase "dropout-srv/internal/user/usecase"
	"dropout-srv/pkg/discord"
	"dropout-srv/pkg/log"
	pkgRedis "dropout-srv/pkg/redis"
	"dropout-srv/pkg/scope"
	pkgSmtp "dropout-srv/pkg/smtp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds every long-lived dependency shared by the commands.
type app struct {
	cfg    *config.Config
	logger log.Logger

	db       *sql.DB
	redis    pkgRedis.IRedis
	discord  discord.IDiscord
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	jwtMgr   scope.Manager

	holder    *backend.Holder
	studentUC student.UseCase
	userUC    user.UseCase
	alertUC   alert.UseCase
	riskUC    risk.UseCase
}

func bootstrap(ctx context.Context, cfg *config.Config, logger log.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	jwtMgr, err := scope.NewWithTTL(cfg.JWT.SecretKey, cfg.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	a.jwtMgr = jwtMgr

	// PostgreSQL - subjects, performance records, identities and (by default) alerts
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	a.db = db
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Redis - sweep lease (optional)
	if cfg.Redis.Enabled() {
		rdb, err := configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			a.close()
			return nil, err
		}
		a.redis = rdb
		logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	}

	// Discord webhook - admin channel and bug reports (optional)
	if url := cfg.Discord.WebhookURL(); url != "" {
		d, err := discord.New(logger, url)
		if err != nil {
			logger.Warnf(ctx, "Failed to initialize Discord webhook: %v", err)
		} else {
			a.discord = d
			logger.Info(ctx, "Discord webhook initialized")
		}
	}

	// Metrics
	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	// Scoring model. A failed load leaves the service up with scoring unavailable.
	a.holder = backend.NewHolder()
	a.loadModel(ctx)

	notifier, err := a.buildNotifier(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	var repo alertRepo.Repository
	switch cfg.Alert.Store {
	case config.AlertStoreMemory:
		repo = alertMemory.New(logger)
		logger.Warn(ctx, "Alert store is in memory; alerts are lost on restart")
	default:
		repo = alertPostgres.New(logger, db)
	}

	a.studentUC = studentUsecase.New(logger, studentPostgres.New(logger, db))
	a.userUC = userUsecase.New(logger, userPostgres.New(logger, db))
	a.alertUC = alertUsecase.New(logger, repo, a.studentUC, a.userUC, notifier, a.metrics, alert.Options{
		ResponseWindow:       cfg.Alert.ResponseWindow,
		ReescalationInterval: cfg.Alert.ReescalationInterval,
		SweepBatchSize:       cfg.Alert.SweepBatchSize,
	})
	a.riskUC = riskUsecase.New(logger, a.holder, a.studentUC, a.alertUC, a.metrics, risk.Thresholds{
		Moderate: cfg.Risk.ModerateThreshold,
		High:     cfg.Risk.HighThreshold,
	})

	return a, nil
}

func (a *app) loadModel(ctx context.Context) {
	var store backend.ObjectGetter
	if a.cfg.Risk.Model.Source == config.ModelSourceMinIO {
		client, err := configMinio.Connect(ctx, a.cfg.MinIO)
		if err != nil {
			a.logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
		} else {
			store = client
			a.logger.Infof(ctx, "MinIO connected successfully to %s", a.cfg.MinIO.Endpoint)
		}
	}

	m, err := backend.Load(ctx, a.cfg.Risk.Model, store)
	if err != nil {
		a.logger.Errorf(ctx, "Failed to load scoring model from %s: %v", a.cfg.Risk.Model.Source, err)
		return
	}
	a.holder.Swap(m, a.cfg.Risk.Model.Source)
	a.logger.Infof(ctx, "Scoring model %s loaded from %s", m.Version(), a.cfg.Risk.Model.Source)
}

func (a *app) buildNotifier(ctx context.Context) (notification.Dispatcher, error) {
	var dispatchers []notification.Dispatcher

	if a.cfg.SMTP.Enabled() {
		sender, err := pkgSmtp.New(a.logger, pkgSmtp.Config{
			Host:     a.cfg.SMTP.Host,
			Port:     a.cfg.SMTP.Port,
			Username: a.cfg.SMTP.Username,
			Password: a.cfg.SMTP.Password,
			From:     a.cfg.SMTP.From,
			Timeout:  a.cfg.SMTP.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("smtp: %w", err)
		}
		renderer, err := notification.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("templates: %w", err)
		}
		dispatchers = append(dispatchers, notification.NewEmail(a.logger, sender, renderer, notification.EmailConfig{
			RatePerMinute: a.cfg.Notification.RatePerMinute,
			Burst:         a.cfg.Notification.Burst,
		}))
	} else {
		a.logger.Warn(ctx, "SMTP is not configured; e-mail notifications are disabled")
	}

	if a.discord != nil {
		dispatchers = append(dispatchers, notification.NewDiscord(a.logger, a.discord))
	}

	return notification.NewMulti(dispatchers...), nil
}

func (a *app) lease() sweeper.Lease {
	if a.redis == nil {
		return sweeper.NewNopLease()
	}
	return sweeper.NewRedisLease(a.redis, sweeper.DefaultLeaseKey, a.cfg.Alert.SweepLeaseTTL)
}

func (a *app) close() {
	ctx := context.Background()
	if a.discord != nil {
		_ = a.discord.Close()
	}
	if a.redis != nil {
		if err := configRedis.Disconnect(); err != nil {
			a.logger.Errorf(ctx, "Failed to close Redis: %v", err)
		}
	}
	if err := configMinio.Disconnect(ctx); err != nil {
		a.logger.Errorf(ctx, "Failed to close MinIO: %v", err)
	}
	if a.db != nil {
		if err := postgre.Disconnect(ctx, a.db); err != nil {
			a.logger.Errorf(ctx, "Failed to close PostgreSQL: %v", err)
		}
	}
}
