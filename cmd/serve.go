package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	config "log-owl.com/log-owl/internal/configs"
	httpapi "log-owl.com/log-owl/internal/http"
	"log-owl.com/log-owl/internal/liveness"
	"log-owl.com/log-owl/internal/logger"
	repository "log-owl.com/log-owl/internal/repositories"
	"log-owl.com/log-owl/internal/services"
	"log-owl.com/log-owl/pkg/clock"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Recovers intervals left open by the last run, starts the heartbeat and serves the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		database, err := openStore(ctx)
		if err != nil {
			return err
		}
		closeDatabase := sync.OnceFunc(func() { closeStore(database) })
		defer closeDatabase()

		clk := clock.Real()
		taskRepo := repository.NewTaskRepository(database)
		entryRepo := repository.NewTimeEntryRepository(database)
		sessionRepo := repository.NewTaskSessionRepository(database)
		stateRepo := repository.NewAppStateRepository(database)

		// Recovery reads the previous run's heartbeat, so it has to finish
		// before the first beat of this run overwrites it.
		recovered, err := services.NewRecoveryService(database, entryRepo, stateRepo, clk).Recover(ctx)
		if err != nil {
			return fmt.Errorf("recover open time entries: %w", err)
		}
		notice := services.NewRecoveryNotice()
		notice.Deliver(recovered)

		taskService := services.NewTaskService(database, taskRepo, clk)
		if _, err := taskService.EnsureServiceTask(ctx); err != nil {
			return fmt.Errorf("ensure service task: %w", err)
		}
		sessionService := services.NewSessionService(database, sessionRepo, entryRepo, taskRepo, clk)

		mirrors, closeMirrors := livenessMirrors()
		defer closeMirrors()

		heartbeat := services.NewHeartbeatService(stateRepo, clk, cfg.HeartbeatInterval(), mirrors...)
		heartbeatCtx, stopHeartbeat := context.WithCancel(context.Background())
		heartbeatDone := make(chan struct{})
		go func() {
			defer close(heartbeatDone)
			heartbeat.Start(heartbeatCtx)
		}()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		handler := httpapi.NewHandler(httpapi.Services{
			Tasks:       taskService,
			TimeEntries: services.NewTimeEntryService(database, entryRepo, taskRepo, clk),
			Sessions:    sessionService,
			Reports:     services.NewReportService(entryRepo, taskRepo),
			Settings:    services.NewSettingsService(repository.NewSettingsRepository(database)),
			Notice:      notice,
		})
		httpapi.Register(e, handler, cfg.RateLimit)

		serveErr := startHTTP(e, cfg.AppURL, stop)

		<-ctx.Done()

		shutdownPlan{
			server:        e,
			stopHeartbeat: stopHeartbeat,
			heartbeatDone: heartbeatDone,
			sessions:      sessionService,
			closeStore:    closeDatabase,
			timeout:       cfg.ShutdownTimeout(),
		}.run()

		select {
		case err := <-serveErr:
			return fmt.Errorf("http server: %w", err)
		default:
		}
		return nil
	},
}

// startHTTP serves in the background. A listen failure cancels the
// process context through stop and is reported on the returned channel.
func startHTTP(e *echo.Echo, addr string, stop context.CancelFunc) <-chan error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", err)
			serveErr <- err
			stop()
		}
	}()
	return serveErr
}

type httpServer interface {
	Shutdown(ctx context.Context) error
}

// shutdownPlan tears the server down in order: HTTP, heartbeat, the
// session flush, then the store. Sessions must be flushed while the store
// is still open.
type shutdownPlan struct {
	server        httpServer
	stopHeartbeat context.CancelFunc
	heartbeatDone <-chan struct{}
	sessions      *services.SessionService
	closeStore    func()
	timeout       time.Duration
}

func (p shutdownPlan) run() {
	httpCtx, cancelHTTP := context.WithTimeout(context.Background(), p.timeout)
	defer cancelHTTP()
	if err := p.server.Shutdown(httpCtx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}

	p.stopHeartbeat()
	<-p.heartbeatDone

	// A slow HTTP shutdown can use up its whole deadline, so the flush
	// gets a fresh one.
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), p.timeout)
	defer cancelFlush()
	p.sessions.CloseAllOpenOnExit(flushCtx)

	p.closeStore()
	logger.Info("HTTP server and heartbeat shut down gracefully")
}

// livenessMirrors connects the optional redis heartbeat mirror. Redis being
// unreachable only costs the mirror, never the server.
func livenessMirrors() ([]liveness.Publisher, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		logger.Warn("Liveness: redis unavailable, mirror disabled",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err))
		return nil, func() {}
	}

	publisher := liveness.NewRedisPublisher(client, cfg.RedisLivenessKey, cfg.RedisLivenessTTL())
	return []liveness.Publisher{publisher}, client.Close
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
