package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"citymap/internal/config"
	"citymap/internal/controller"
	"citymap/internal/geom"
	"citymap/internal/logging"
	"citymap/internal/metrics"
	"citymap/internal/persist"
	"citymap/internal/render"
	"citymap/internal/store"
	s3store "citymap/internal/store/s3"
	"citymap/internal/tui"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "store driver: memory|fs|sqlite|s3")
	flag.StringVar(&cfg.FSRoot, "fs-root", cfg.FSRoot, "directory for the fs store")
	flag.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "database file for the sqlite store")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "bucket for the s3 store")
	flag.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "region for the s3 store")
	flag.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "custom s3 endpoint (MinIO)")
	flag.BoolVar(&cfg.S3PathStyle, "s3-path-style", cfg.S3PathStyle, "use path-style s3 addressing")
	flag.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "storage key of the plan")
	flag.IntVar(&cfg.CanvasWidth, "width", cfg.CanvasWidth, "canvas width in plan units")
	flag.IntVar(&cfg.CanvasHeight, "height", cfg.CanvasHeight, "canvas height in plan units")
	flag.IntVar(&cfg.HistoryCapacity, "history", cfg.HistoryCapacity, "undo steps kept")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (empty disables logging)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve prometheus metrics on this address")
	exportPNG := flag.String("export-png", "", "render the stored plan to this PNG file and exit")
	dir := flag.String("dir", "", "directory for imports and exports (default: working directory)")
	flag.Parse()

	if err := run(cfg, *exportPNG, *dir, flag.Arg(0)); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, exportPNG, dir, importPath string) error {
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	st, err := store.Open(ctx, store.Options{
		Driver:     store.Driver(cfg.StoreDriver),
		FSRoot:     cfg.FSRoot,
		SQLitePath: cfg.SQLitePath,
		S3: s3store.Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PathStyle:       cfg.S3PathStyle,
		},
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store opened", "driver", st.Driver(), "key", cfg.StorageKey)

	gw := persist.New(st, cfg.StorageKey, logger)
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	initial := gw.Load(loadCtx)
	cancel()

	m := metrics.New()
	ctrl := controller.New(initial, controller.Options{
		Width:           float64(cfg.CanvasWidth),
		Height:          float64(cfg.CanvasHeight),
		HistoryCapacity: cfg.HistoryCapacity,
		Saver:           gw,
		Metrics:         m,
		Logger:          logger,
	})

	if exportPNG != "" {
		return writePNG(ctrl, exportPNG)
	}
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, m, logger)
	}

	model := tui.New(ctx, ctrl, tui.Options{Dir: dir, Logger: logger})
	if importPath != "" {
		objs, err := geom.Load(importPath)
		if err != nil {
			return fmt.Errorf("import %s: %w", importPath, err)
		}
		w, h := ctrl.CanvasSize()
		ctrl.Import(geom.Fit(objs, w, h))
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return nil
}

func writePNG(ctrl *controller.Controller, path string) error {
	f := ctrl.Frame()
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(out, f.Render, int(f.Width), int(f.Height)); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func serveMetrics(addr string, m *metrics.Metrics, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", "err", err)
	}
}
