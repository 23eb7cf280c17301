package app

import (
	"context"
	"fmt"
	"time"

	"fieldmate/internal/config"
	"fieldmate/internal/events"
	"fieldmate/internal/jobs"
	"fieldmate/internal/metrics"
	"fieldmate/internal/middleware"
	"fieldmate/internal/repo"
	"fieldmate/internal/storage"
	"fieldmate/migrations"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Deleted tasks are purged this long after deletion.
	deletedTaskRetention = 7 * 24 * time.Hour
	// Files younger than this are never treated as orphans.
	orphanGrace = time.Hour
	jobTimeout  = 10 * time.Minute
)

type App struct {
	cfg       config.Config
	logger    *zap.Logger
	db        *pgxpool.Pool
	redis     *redis.Client
	store     *storage.Store
	hub       *events.Hub
	limiter   *middleware.RateLimiter
	scheduler *jobs.Scheduler
	router    *gin.Engine
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	db, err := newPostgres(cfg.PG)
	if err != nil {
		return nil, err
	}
	a.db = db

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.redis = rdb

	if !cfg.PG.MigrationsOff {
		if err := runMigrations(cfg.PG.DSN); err != nil {
			a.closeStores()
			return nil, err
		}
		logger.Info("migrations applied")
	}

	store, err := storage.New(cfg.Storage.Root, cfg.Storage.MaxImageBytes)
	if err != nil {
		a.closeStores()
		return nil, err
	}
	a.store = store
	a.hub = events.NewHub(0, logger)
	a.limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	a.scheduler = jobs.NewScheduler(logger, jobTimeout)
	sweep := jobs.NewOrphanSweep(repo.NewPGTaskRepo(db), store, logger, deletedTaskRetention, orphanGrace)
	if err := a.scheduler.Add("orphan-sweep", cfg.Jobs.OrphanSweep, sweep); err != nil {
		a.closeStores()
		return nil, err
	}
	err = a.scheduler.Add("rate-limit-cleanup", "@every 5m", jobs.JobFunc(func(context.Context) (int, error) {
		return a.limiter.Cleanup(10 * time.Minute), nil
	}))
	if err != nil {
		a.closeStores()
		return nil, err
	}

	a.router = a.newRouter()
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Start launches background jobs.
func (a *App) Start() {
	a.scheduler.Start()
}

func (a *App) Close(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}
	a.closeStores()
	return nil
}

func (a *App) closeStores() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func newPostgres(pg config.PGConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = pg.MaxConns
	cfg.MinConns = pg.MinConns
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (a *App) newRouter() *gin.Engine {
	if !a.cfg.App.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderXRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Type", middleware.HeaderXRequestID},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, Deps{
		Config:  a.cfg,
		Logger:  a.logger,
		DB:      a.db,
		Redis:   a.redis,
		Store:   a.store,
		Hub:     a.hub,
		Limiter: a.limiter,
	})
	return r
}
