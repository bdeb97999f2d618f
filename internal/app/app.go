package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/domain/game"
	"github.com/riskibarqy/club-manager/internal/domain/team"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	"github.com/riskibarqy/club-manager/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/club-manager/internal/infrastructure/authz"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/club-manager/internal/infrastructure/repository/rediscache"
	"github.com/riskibarqy/club-manager/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/club-manager/internal/platform/cache"
	"github.com/riskibarqy/club-manager/internal/platform/dburl"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/resilience"
	"github.com/riskibarqy/club-manager/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	games   game.Repository
	events  game.EventRepository
	videos  video.Repository
	cameras video.CameraRepository
	teams   team.Repository
}

// NewHTTPServer wires storage, auth and the game service behind the HTTP
// router. The returned cleanup releases database and redis connections and
// must be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []func() error
	cleanup := func() error {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = crerr.CombineErrors(errs, closers[i]())
		}
		return errs
	}

	repos, closeStorage, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStorage)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.cameras = cache.NewCameraRepository(repos.cameras, store)
		logger.Info("in-process repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	if cfg.RedisEnabled {
		client, err := rediscache.NewClient(ctx, rediscache.ClientConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			_ = cleanup()
			return nil, nil, err
		}
		closers = append(closers, closeRedis(client))
		repos.videos = rediscache.NewVideoRepository(repos.videos, client, cfg.RedisTTL, logger.Named("rediscache"))
		logger.Info("redis clip cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL.String())
	}

	gameSvc := usecase.NewGameService(
		repos.games,
		repos.events,
		repos.videos,
		repos.cameras,
		repos.teams,
		authz.NewTeamPolicy(),
		usecase.SystemClock{},
		usecase.GameServiceConfig{
			Preroll:           cfg.VideoPreroll,
			OverviewWorkers:   cfg.OverviewWorkers,
			OverviewLookback:  cfg.OverviewLookback,
			OverviewLookahead: cfg.OverviewLookahead,
		},
		logger.Named("usecase"),
	)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			AdminKey:       cfg.AnubisAdminKey,
			Timeout:        cfg.AnubisTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
			Retry: resilience.RetryConfig{
				MaxRetries: cfg.AnubisRetries,
			},
			PrincipalCacheTTL:        cfg.AnubisPrincipalCacheTTL,
			PrincipalCacheMaxEntries: cfg.AnubisPrincipalCacheMaxEntries,
		},
		logger,
	)

	handler := httpapi.NewHandler(gameSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		data := memory.Seed(time.Now().UTC())
		logger.Warn("using in-memory demo dataset", "games", len(data.Games), "videos", len(data.Videos))
		return repositories{
			games:   memory.NewGameRepository(data.Games),
			events:  memory.NewGameEventRepository(data.Events),
			videos:  memory.NewVideoRepository(data.Videos),
			cameras: memory.NewCameraRepository(data.Cameras),
			teams:   memory.NewTeamRepository(data.Teams),
		}, func() error { return nil }, nil
	case config.StorageDriverPostgres, "":
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			games:   postgres.NewGameRepository(db),
			events:  postgres.NewGameEventRepository(db),
			videos:  postgres.NewVideoRepository(db),
			cameras: postgres.NewCameraRepository(db),
			teams:   postgres.NewTeamRepository(db),
		}, db.Close, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
		otelsql.WithAttributes(attribute.String("service.name", cfg.ServiceName)),
	}
	if name := dburl.Name(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrapf(err, "ping postgres %s", dburl.Redact(dsn))
	}

	return db, nil
}

func closeRedis(client *goredis.Client) func() error {
	return func() error {
		if err := client.Close(); err != nil {
			return crerr.Wrap(err, "close redis")
		}
		return nil
	}
}
