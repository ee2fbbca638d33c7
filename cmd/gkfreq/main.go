package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"gkfreq/internal/collector/cpu"
	"gkfreq/internal/config"
	"gkfreq/internal/domain"
	"gkfreq/internal/logger"
	"gkfreq/internal/metrics"
	"gkfreq/internal/panel"
	"gkfreq/internal/storage/settings"
	"gkfreq/internal/system"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup, such as closing
// the sqlite handle, happens before exit.
func run() int {
	format := flag.String("format", "", "label format, see -tokens")
	usage := flag.String("usage", "", "show per-cpu usage: on|off")
	save := flag.Bool("save", false, "persist -format/-usage and exit")
	tokens := flag.Bool("tokens", false, "print the label format tokens and exit")
	once := flag.Bool("once", false, "draw a single frame and exit")
	flag.Parse()

	if *tokens {
		for _, line := range cpu.FormatHelp {
			fmt.Println(line)
		}
		return 0
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("FATAL: ", err)
	}

	appLog := logger.New(cfg).With("instance_id", cfg.InstanceID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := settings.Open(cfg, appLog)
	if err != nil {
		appLog.Error("failed to open settings store", "backend", cfg.SettingsBackend, "error", err)
		return 1
	}
	defer store.Close()

	if _, err := applyFlags(domain.DefaultSettings(), *format, *usage); err != nil {
		appLog.Error("invalid flags", "error", err)
		return 2
	}

	current, err := reloadSettings(ctx, store, *format, *usage)
	if err != nil {
		appLog.Warn("failed to load settings, using defaults", "error", err)
	}

	if *save {
		if err := store.Save(ctx, current); err != nil {
			appLog.Error("failed to save settings", "error", err)
			return 1
		}
		appLog.Info("settings saved", "text_format", current.TextFormat, "show_usage", current.ShowUsage)
		return 0
	}

	reader := system.NewReader(cfg.SysfsRoot, appLog)

	slots := cfg.MaxCPUs
	if slots == config.MaxCPUsAuto {
		n, ok := reader.KernelMaxCPUs()
		if !ok {
			n = config.DefaultMaxCPUs
		}
		slots = n
	}

	var source system.CounterSource
	switch cfg.UsageSource {
	case config.UsageSourceGopsutil:
		source = system.NewGopsutilSource()
	default:
		source = system.NewProcStatSource(reader)
	}

	sampler, err := metrics.NewSampler(slots, cpu.NewCollector(reader, appLog), source, appLog, current)
	if err != nil {
		appLog.Error("failed to create sampler", "error", err)
		return 1
	}

	online := sampler.Rebuild()

	appLog.Info("gkfreq: starting...",
		"host", reader.Hostname(),
		"kernel", reader.KernelVersion(),
		"slots", slots,
		"online", online,
		"usage_source", cfg.UsageSource,
		"settings_backend", cfg.SettingsBackend,
	)

	width := cfg.PanelWidth
	if width == 0 {
		width = panel.DetectWidth(os.Stdout, panel.DefaultWidth)
	}
	p := panel.New(width, !*once && panel.IsTerminal(os.Stdout))

	draw := func(payloads []domain.SlotPayload) {
		if err := p.Draw(os.Stdout, payloads); err != nil {
			appLog.Error("failed to draw panel", "error", err)
		}
	}

	if *once {
		draw(sampler.Tick(ctx))
		return 0
	}

	scheduler := metrics.NewScheduler(cfg.Interval, appLog, sampler.Tick, draw)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return scheduler.Start(gCtx)
	})

	g.Go(func() error {
		return reloadOnHangup(gCtx, store, sampler, *format, *usage, appLog)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLog.Error("gkfreq failed unexpectedly", "error", err)
		return 1
	}

	appLog.Info("gkfreq stopped gracefully.")
	return 0
}

func applyFlags(s domain.Settings, format, usage string) (domain.Settings, error) {
	if format != "" {
		s = s.WithTextFormat(format)
	}

	switch usage {
	case "":
	case "on", "true", "1":
		s = s.WithShowUsage(true)
	case "off", "false", "0":
		s = s.WithShowUsage(false)
	default:
		return s, fmt.Errorf("-usage must be on or off, got %q", usage)
	}

	return s, nil
}

// reloadSettings loads the stored settings and lays the command line
// overrides on top. On a load error the overrides still apply to the
// defaults.
func reloadSettings(ctx context.Context, store settings.Store, format, usage string) (domain.Settings, error) {
	s, loadErr := store.Load(ctx)
	if loadErr != nil {
		s = domain.DefaultSettings()
	}

	s, err := applyFlags(s, format, usage)
	if err != nil {
		return s, err
	}

	return s, loadErr
}

// reloadOnHangup re-reads the settings and re-detects online cpus on SIGHUP.
// Command line overrides stay in effect across reloads.
func reloadOnHangup(ctx context.Context, store settings.Store, sampler *metrics.Sampler, format, usage string, log logger.Logger) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hup:
			s, err := reloadSettings(ctx, store, format, usage)
			if err != nil {
				log.Warn("reload: failed to load settings, keeping current", "error", err)
			} else {
				sampler.Configure(s)
			}

			online := sampler.Rebuild()
			log.Info("reload: settings applied", "text_format", sampler.Settings().TextFormat, "online", online)
		}
	}
}
