// Package exporter polls a battery module on a fixed interval and serves
// the readings over HTTP: Prometheus metrics, the latest snapshot as JSON,
// and a health probe.
package exporter

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/internal/metrics"
)

// ErrNoSnapshot is reported by /snapshot before the first successful poll.
var ErrNoSnapshot = errors.New("no snapshot yet")

// Snapshotter reads a complete snapshot. *bms.Client implements it.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*bms.Snapshot, error)
}

// Options configures an Exporter.
type Options struct {
	Device      string
	Interval    time.Duration
	CORSOrigins []string
	Logger      zerolog.Logger

	// TrustedProxies lists the proxy addresses whose forwarding headers are
	// honored. Defaults to loopback.
	TrustedProxies []string
}

// Exporter owns the polling loop and the HTTP router.
type Exporter struct {
	source  Snapshotter
	opts    Options
	router  *gin.Engine
	started time.Time

	mu      sync.RWMutex
	latest  *bms.Snapshot
	lastErr error
}

// New creates an exporter reading from source. The routes are registered
// immediately; nothing is polled until Run or Poll is called.
func New(source Snapshotter, opts Options) *Exporter {
	metrics.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(opts.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CORSOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	proxies := opts.TrustedProxies
	if len(proxies) == 0 {
		proxies = []string{"127.0.0.1", "::1"}
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		opts.Logger.Warn().Err(err).Strs("proxies", proxies).Msg("invalid trusted proxies, forwarding headers ignored")
	}

	e := &Exporter{
		source:  source,
		opts:    opts,
		router:  r,
		started: time.Now(),
	}
	e.registerRoutes()
	return e
}

// Handler returns the HTTP handler serving every route.
func (e *Exporter) Handler() http.Handler {
	return e.router
}

func (e *Exporter) registerRoutes() {
	e.router.GET("/health", func(c *gin.Context) {
		e.mu.RLock()
		lastErr := e.lastErr
		ok := e.latest != nil
		e.mu.RUnlock()

		body := gin.H{
			"status": "ok",
			"device": e.opts.Device,
			"uptime": time.Since(e.started).String(),
		}
		if lastErr != nil {
			body["status"] = "degraded"
			body["error"] = lastErr.Error()
		}
		body["polled"] = ok
		c.JSON(http.StatusOK, body)
	})

	e.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	e.router.GET("/snapshot", func(c *gin.Context) {
		snap, err := e.Latest()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap)
	})
}

// Latest returns the most recent snapshot, or ErrNoSnapshot.
func (e *Exporter) Latest() (*bms.Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.latest == nil {
		return nil, ErrNoSnapshot
	}
	return e.latest, nil
}

// Poll reads one snapshot and publishes it. A failed poll keeps the last
// good snapshot but marks the module down.
func (e *Exporter) Poll(ctx context.Context) error {
	snap, err := e.source.Snapshot(ctx)

	e.mu.Lock()
	e.lastErr = err
	if err == nil {
		e.latest = snap
	}
	e.mu.Unlock()

	if err != nil {
		metrics.RecordPollFailure(e.opts.Device)
		e.opts.Logger.Warn().Err(err).Str("device", e.opts.Device).Msg("poll failed")
		return err
	}

	metrics.RecordSnapshot(e.opts.Device, snap)
	e.opts.Logger.Debug().
		Str("device", e.opts.Device).
		Uint32("relative_soc", snap.RelativeStateOfCharge).
		Int32("current_ma", snap.Current).
		Msg("poll")
	return nil
}

// Run polls immediately and then every interval until ctx is done. Poll
// failures are logged and do not stop the loop.
func (e *Exporter) Run(ctx context.Context) {
	interval := e.opts.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	_ = e.Poll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = e.Poll(ctx)
		}
	}
}

// Serve listens on addr and runs the polling loop until ctx is done, then
// shuts the server down.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           e.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	pollCtx, stopPolling := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Run(pollCtx)
	}()

	e.opts.Logger.Info().
		Str("listen", addr).
		Str("device", e.opts.Device).
		Dur("interval", e.opts.Interval).
		Msg("exporter started")

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	stopPolling()
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}

	e.opts.Logger.Info().Msg("exporter stopped")
	return serveErr
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		event := logger.Debug()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
