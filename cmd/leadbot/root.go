package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/agencyos/leadbot"
	"github.com/agencyos/leadbot/config"
	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/leads"
	"github.com/agencyos/leadbot/logging"
	"github.com/agencyos/leadbot/metrics"
	"github.com/agencyos/leadbot/report"
	"github.com/agencyos/leadbot/responder"
	respanthropic "github.com/agencyos/leadbot/responder/anthropic"
	respopenai "github.com/agencyos/leadbot/responder/openai"
	"github.com/agencyos/leadbot/server"
	"github.com/agencyos/leadbot/session"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:     "leadbot",
		Short:   "Lead-qualification chatbot backend",
		Long:    "A multi-turn conversational agent that qualifies website project leads over HTTP.",
		Version: version,
	}
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	})

	return cmd
}

func runServe(ctx context.Context, cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger := logging.New(func(o *logging.Options) {
		o.Level = cfg.Log.Level
		o.Format = cfg.Log.Format
	})

	store := session.NewInMemoryStore(cfg.SessionTTL)
	agg := metrics.NewAggregator()
	leadStore := leads.NewStore(cfg.LeadsFile)
	reports := report.NewGenerator(cfg.ReportsDir)

	bot := leadbot.New(func(o *leadbot.Options) {
		o.SessionStore = store
		o.Metrics = agg
		o.Responder = buildResponder(cfg.Responder)
		o.Logger = logger
		o.OnLeadCompleted = func(sessionID string, data core.SessionData) string {
			if err := leadStore.Append(leads.Lead{
				SessionID: sessionID,
				Data:      data,
				CreatedAt: time.Now().UTC(),
			}); err != nil {
				logger.Error("persist lead", "session_id", sessionID, "error", err.Error())
			}
			url, err := reports.Generate(sessionID, data)
			if err != nil {
				logger.Error("generate report", "session_id", sessionID, "error", err.Error())
				return ""
			}
			return "Report: " + url
		}
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go session.RunJanitor(ctx, store, cfg.PurgeInterval, logger)

	srv := server.New(bot, func(o *server.Options) {
		o.Leads = leadStore
		o.AdminKey = cfg.AdminKey
		o.ReportsDir = cfg.ReportsDir
		o.Logger = logger
	})

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err.Error())
		}
	}()

	logger.Info("leadbot listening", "addr", cfg.Addr, "version", version)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("leadbot stopped")
	return nil
}

// buildResponder wires the configured provider, wrapped in a best-effort rate
// limit. Nil means the escape hatch is off and unmatched messages get the
// canned fallback.
func buildResponder(cfg config.ResponderConfig) responder.Responder {
	var r responder.Responder
	switch cfg.Provider {
	case "openai", "mistral":
		r = respopenai.New(func(o *respopenai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
		})
	case "anthropic":
		r = respanthropic.New(func(o *respanthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropic.Model(cfg.Model)
			}
			o.APIKey = cfg.APIKey
		})
	default:
		return nil
	}
	if cfg.RateLimit > 0 {
		r = responder.WithRateLimit(r, rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	return r
}
