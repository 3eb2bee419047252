// pkg/serverfx/serverfx.go
package serverfx

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"strings"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ali-hajeh/response-handler/pkg/bundlefx"
	"github.com/ali-hajeh/response-handler/pkg/config"
	"github.com/ali-hajeh/response-handler/pkg/envelope"
	"github.com/ali-hajeh/response-handler/pkg/middleware/auth"
	"github.com/ali-hajeh/response-handler/pkg/middleware/logger"
	"github.com/ali-hajeh/response-handler/pkg/middleware/metrics"
	"github.com/ali-hajeh/response-handler/pkg/middleware/respond"
	"github.com/ali-hajeh/response-handler/pkg/transport/httpx"
)

// ---------- Options ----------

type Config struct {
	Service     string // for logs only
	ConfigEnv   string // e.g. APP_CONFIG
	DefaultPath string // e.g. "config.toml"
	ListenEnv   string // SERVER_LISTEN_ADDRESS; overrides the file when set
	TLSCertEnv  string // SSL_SERVER_CERTIFICATE
	TLSKeyEnv   string // SSL_SERVER_KEY
}

type Option func(*Config)

func WithService(s string) Option          { return func(c *Config) { c.Service = s } }
func WithConfigEnv(k string) Option        { return func(c *Config) { c.ConfigEnv = k } }
func WithDefaultConfig(path string) Option { return func(c *Config) { c.DefaultPath = path } }
func WithListenEnv(k string) Option        { return func(c *Config) { c.ListenEnv = k } }
func WithTLSCertKeyEnv(cert, key string) Option {
	return func(c *Config) { c.TLSCertEnv, c.TLSKeyEnv = cert, key }
}

func defaultConfig() Config {
	return Config{
		Service:     "app",
		ConfigEnv:   "APP_CONFIG",
		DefaultPath: "config.toml",
		ListenEnv:   "SERVER_LISTEN_ADDRESS",
		TLSCertEnv:  "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:   "SSL_SERVER_KEY",
	}
}

// Module returns a complete Fx option set: registry, middleware chain, router
// and server lifecycle. Add app routes via ProvideRoute alongside.
func Module(opts ...Option) fx.Option {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return fx.Options(
		fx.Supply(cfg),
		bundlefx.Module,
		fx.Provide(provideRuntime),
		fx.Provide(httpx.NewChi),
		fx.Provide(fx.Annotate(provideRouter, fx.ResultTags(`name:"app"`))),
		fx.Invoke(registerHooks),
	)
}

// ProvideRoute annotates a route constructor into the group serverfx collects.
func ProvideRoute(ctor any) fx.Option {
	return fx.Provide(fx.Annotate(ctor, fx.ResultTags(`group:"routes"`)))
}

func provideRuntime(c Config) (config.Config, error) {
	return config.Load(envOr(c.ConfigEnv, c.DefaultPath))
}

// ---------- Router ----------

type routerDeps struct {
	fx.In

	Runtime config.Config

	AuthMW *auth.Middleware
	RespMW *respond.Middleware
	LogMW  *logger.Middleware

	Metrics http.Handler  `name:"metrics"`
	Routes  []httpx.Route `group:"routes"`

	R httpx.Router
}

func provideRouter(d routerDeps) http.Handler {
	r := d.R
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))

	if d.Runtime.Metrics.Enabled {
		d.RespMW.SetObserver(metrics.ObserveEnvelope)
		metrics.AddSkipPaths(d.Runtime.Metrics.SkipPaths...)
	}
	logger.AddBodyLogPaths(d.Runtime.Log.BodyLogPaths...)

	// Binding order: respond first so every later stage, including NotFound,
	// can answer through the envelope methods.
	r.Use(d.RespMW.Middleware())
	if d.Runtime.Auth.Enabled {
		r.Use(d.AuthMW.Middleware())
	}
	r.Use(d.LogMW.Middleware())
	if d.Runtime.Metrics.Enabled {
		r.Use(metrics.Collect())
		r.Handle(http.MethodGet, "/metrics", d.Metrics)
	}

	// Unmatched requests answer in the same shape as everything else.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.From(req).NotFound(nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respond.From(req).BadRequest(&envelope.Options{
			Message:    "Method Not Allowed",
			StatusCode: http.StatusMethodNotAllowed,
		})
	})

	for _, rt := range d.Routes {
		h := rt.Handler
		if rt.Guarded {
			h = d.AuthMW.Require(h)
		}
		switch strings.ToUpper(rt.Method) {
		case http.MethodGet:
			r.Get(rt.Path, h)
		case http.MethodPost:
			r.Post(rt.Path, h)
		case http.MethodPut:
			r.Put(rt.Path, h)
		case http.MethodDelete:
			r.Delete(rt.Path, h)
		default:
			r.Handle(rt.Method, rt.Path, h)
		}
	}
	return r.Mux()
}

// ---------- Server lifecycle ----------

type serverDeps struct {
	fx.In
	Cfg     Config
	Runtime config.Config
	Logger  *zap.Logger
	App     http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Cfg.ListenEnv, d.Runtime.Server.ListenAddress)
	cert := firstNonEmpty(os.Getenv(d.Cfg.TLSCertEnv), d.Runtime.Server.TLSCertificate)
	key := firstNonEmpty(os.Getenv(d.Cfg.TLSKeyEnv), d.Runtime.Server.TLSKey)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  time.Duration(d.Runtime.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(d.Runtime.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(d.Runtime.Server.IdleTimeoutSeconds) * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Cfg.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", d.Cfg.Service),
					zap.String("addr", addr),
				)
				go func() {
					srv.TLSConfig = nil
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Cfg.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---------- helpers ----------

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
