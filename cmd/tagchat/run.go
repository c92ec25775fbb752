package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/golden-vcr/tagchat/internal/chat"
	"github.com/golden-vcr/tagchat/internal/console"
	"github.com/golden-vcr/tagchat/internal/events"
	"github.com/golden-vcr/tagchat/internal/health"
	"github.com/golden-vcr/tagchat/internal/host"
	"github.com/golden-vcr/tagchat/internal/logging"
	"github.com/golden-vcr/tagchat/internal/metrics"
	"github.com/golden-vcr/tagchat/internal/prefs"
	"github.com/golden-vcr/tagchat/internal/sse"
)

type runConfig struct {
	BindAddr       string   `env:"BIND_ADDR" default:"localhost"`
	ListenPort     uint16   `env:"LISTEN_PORT" default:"5001"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" default:"*"`
	PrefsPath      string   `env:"TAGCHAT_PREFS_PATH" default:"tagchat.yaml"`
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Join the configured channels and chat from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := runConfig{}
			chatConfig := chat.Config{}
			logConfig := logging.Config{}
			if err := loadConfig(&config, &chatConfig, &logConfig); err != nil {
				return err
			}
			logger, err := logging.New(logConfig)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, close := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer close()
			return run(ctx, config, chatConfig, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}
}

func run(ctx context.Context, config runConfig, chatConfig chat.Config, in io.Reader, out io.Writer, logger *zap.Logger) error {
	store, err := prefs.Open(config.PrefsPath, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	nick := chatConfig.Username
	if nick == "" {
		nick = "(anonymous)"
	}
	display := console.New(out, nick, store, logger)
	handler := events.NewHandler(display, m, logger)
	client := chat.NewClient(chatConfig, handler, display, logger)
	display.SetHooks(console.Hooks{
		Receive:  client.Receive,
		Say:      client.Say,
		Outgoing: handler.HandleOutgoing,
		Focus:    handler.Focus,
		Badges:   handler.Badges,
	})
	if channels := client.Channels(); len(channels) > 0 {
		display.Focus(channels[0])
	}

	lines := sse.NewHandler(ctx, display.Lines(), logger)
	lines.Backlog = display.Backlog
	lines.ID = func(line console.Line) string { return line.ID }
	lines.Filter = func(req *http.Request) func(console.Line) bool {
		channel := req.URL.Query().Get("channel")
		if channel == "" {
			return nil
		}
		return func(line console.Line) bool { return strings.EqualFold(line.Channel, channel) }
	}

	r := mux.NewRouter()
	r.Path("/lines").Methods("GET").Handler(lines)
	r.Path("/health").Methods("GET").Handler(health.NewServer(client.GetStatus, client.Channels()))
	r.Path("/metrics").Methods("GET").Handler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	addr := fmt.Sprintf("%s:%d", config.BindAddr, config.ListenPort)
	server := &http.Server{
		Addr: addr,
		Handler: cors.New(cors.Options{
			AllowedOrigins: config.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}).Handler(r),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Run(ctx)
	})
	g.Go(func() error {
		return store.Watch(ctx)
	})
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error running server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown(context.Background())
	})

	// Reads from the terminal can't be interrupted, so input is left running on its own
	// rather than holding up shutdown
	go readInput(in, display, logger)

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readInput feeds each line typed at the terminal to the console
func readInput(in io.Reader, display *console.Host, logger *zap.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := display.Input(scanner.Text()); err != nil {
			display.Print("", host.EventError, err.Error())
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("failed to read input", zap.Error(err))
	}
}
