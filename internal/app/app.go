package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/birdieboard/birdieboard/internal/config"
	"github.com/birdieboard/birdieboard/internal/infrastructure/account/passport"
	"github.com/birdieboard/birdieboard/internal/infrastructure/jobqueue"
	"github.com/birdieboard/birdieboard/internal/infrastructure/repository/postgres"
	"github.com/birdieboard/birdieboard/internal/interfaces/httpapi"
	"github.com/birdieboard/birdieboard/internal/platform/cache"
	idgen "github.com/birdieboard/birdieboard/internal/platform/id"
	"github.com/birdieboard/birdieboard/internal/platform/logging"
	"github.com/birdieboard/birdieboard/internal/platform/resilience"
	"github.com/birdieboard/birdieboard/internal/usecase"

	_ "github.com/lib/pq"
)

// NewHTTPServer wires the full service: postgres repositories, usecase
// services, account client, job queue and the HTTP router. The returned
// closer shuts the DB pool down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	roundRepo := postgres.NewRoundRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	scoreRepo := postgres.NewScoreRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	feedRepo := postgres.NewFeedRepository(db)

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// A nanosecond TTL makes every Get a miss without a second code path.
		cacheTTL = time.Nanosecond
	}
	courseSvc := usecase.NewCourseService(courseRepo, cache.NewStore(cacheTTL))

	feedGen := usecase.NewFeedGeneratorService(
		roundRepo,
		snapshotRepo,
		scoreRepo,
		feedRepo,
		[]usecase.AchievementRule{usecase.NewPersonalBestRule(scoreRepo)},
		logger,
	)
	fanout := usecase.NewFanoutService(feedRepo, profileRepo, cfg.FanoutWorkers, logger)

	var backfill usecase.FeedBackfillEnqueuer
	if cfg.QStashEnabled {
		backfill = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	} else {
		backfill = jobqueue.NewNopPublisher(logger)
	}

	roundSvc := usecase.NewRoundService(
		roundRepo,
		courseRepo,
		snapshotRepo,
		scoreRepo,
		profileRepo,
		feedGen,
		fanout,
		backfill,
		idgen.NewRandomGenerator(),
		logger,
	)
	feedQuerySvc := usecase.NewFeedQueryService(feedRepo)

	passportClient := passport.NewClient(
		&http.Client{Timeout: cfg.PassportTimeout},
		cfg.PassportBaseURL,
		cfg.PassportIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.PassportCircuitEnabled,
			FailureThreshold: cfg.PassportCircuitFailureCount,
			OpenTimeout:      cfg.PassportCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PassportCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(courseSvc, roundSvc, feedQuerySvc, logger)
	router := httpapi.NewRouter(handler, passportClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
