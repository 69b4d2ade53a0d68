package core

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jayline-services/assist/app/core/srv"
	"github.com/jayline-services/assist/app/store/sqlstore"
	"github.com/jayline-services/assist/pkg/github"
	"github.com/jayline-services/assist/pkg/types"
	"github.com/jayline-services/assist/pkg/utils"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores     func() *sqlstore.Provider
	cache      types.Cache
	github     *github.Client
	httpClient *http.Client
	httpEngine *gin.Engine

	metrics *Metrics
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		metrics:    NewMetrics("jayline", "assist"),
		httpEngine: gin.New(),
	}

	setupSqlStore(core)
	setupCache(core)

	if cfg.GitHub.Enabled {
		core.github = github.NewClient(cfg.GitHub)
	}

	core.srv = srv.SetupSrvs(srv.ApplyAI(cfg.AI))

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	if err := core.stores().Install(); err != nil {
		panic(err)
	}
}

func setupCache(core *Core) {
	if core.cfg.Redis.Addr == "" {
		core.cache = &NoopCache{}
		return
	}

	core.cache = &Cache{
		redis: redis.NewClient(&redis.Options{
			Addr:     core.cfg.Redis.Addr,
			Password: core.cfg.Redis.Password,
			DB:       core.cfg.Redis.DB,
		}),
	}
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) Cache() types.Cache {
	return s.cache
}

// GitHub returns nil when draft mirroring is not configured.
func (s *Core) GitHub() *github.Client {
	return s.github
}
