package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tc "github.com/Roma7-7-7/telegram"
	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/Roma7-7-7/homework-notifier/internal/config"
	"github.com/Roma7-7-7/homework-notifier/internal/practicum"
	"github.com/Roma7-7-7/homework-notifier/internal/service"
	"github.com/Roma7-7-7/homework-notifier/pkg/clock"
)

const levelCritical = slog.Level(12)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	conf, err := config.New(ctx, envFile)
	if err != nil {
		newLogger(os.Stdout, false, "").Log(ctx, levelCritical, "Failed to load configuration. Exiting", "error", err)
		os.Exit(1)
	}

	log := newLogger(os.Stdout, conf.Dev, conf.LogLevel)

	practicumClient := practicum.NewClient(conf.PracticumEndpoint, conf.PracticumToken, conf.RequestTimeout, log)
	telegramClient := tc.NewClient(&http.Client{Timeout: conf.RequestTimeout}, conf.TelegramToken)
	homeworks := service.NewHomeworks(
		practicumClient,
		telegramClient,
		service.DefaultVerdicts(),
		conf.TelegramChatID,
		clock.New(),
		log,
	)

	notifySystemd(log, daemon.SdNotifyReady)
	log.InfoContext(ctx, "Starting homework notifier", "interval", conf.RetryPeriod)

	service.NewScheduler(homeworks, conf.RetryPeriod, log).
		WithAfterCycle(func() {
			notifySystemd(log, daemon.SdNotifyWatchdog)
		}).
		Start(ctx)

	notifySystemd(log, daemon.SdNotifyStopping)
	log.Info("Stopped homework notifier")
}

// notifySystemd is a no-op when the process is not started by systemd.
func notifySystemd(log *slog.Logger, state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		log.Warn("Failed to notify systemd", "state", state, "error", err)
	}
}

func newLogger(w io.Writer, dev bool, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == levelCritical {
					a.Value = slog.StringValue("CRITICAL")
				}
			}
			return a
		},
	}
	if dev {
		opts.Level = slog.LevelDebug
	}
	if level != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err == nil {
			opts.Level = lvl
		}
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if dev {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
