package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hkex/market-sim/pkg/httpapi"
	"github.com/hkex/market-sim/pkg/obs"
	"github.com/hkex/market-sim/pkg/simulation"
	"github.com/hkex/market-sim/pkg/storage"
	"github.com/hkex/market-sim/pkg/storage/configfile"
	"github.com/hkex/market-sim/pkg/storage/localkv"
	"github.com/hkex/market-sim/pkg/storage/promsink"
	"github.com/hkex/market-sim/pkg/storage/rediskv"
)

func main() {
	root := &cobra.Command{
		Use:   "market-sim",
		Short: "discrete-time stock exchange simulator",
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "initialize and run the simulation",
		RunE:  runStart,
	}
	simulation.RegisterFlags(start.Flags())
	start.Flags().Bool("offline", false, "use the embedded pebble-backed KV store instead of Redis")
	start.Flags().Int64("seed", 0, "PRNG seed (0 picks a random seed)")

	root.AddCommand(start)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "data/market-sim.log"
	}
	logger, err := obs.NewLoggerWithFile(logFile)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	settings, err := simulation.LoadSettings(configfile.New(""), cmd.Flags())
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	printSettingsTable(settings)

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = rand.Int63()
	}

	offline, _ := cmd.Flags().GetBool("offline")
	kv, closeKV, err := openKVStore(offline, settings)
	if err != nil {
		return fmt.Errorf("open kv store: %w", err)
	}
	defer closeKV()

	if settings.FlushStorage {
		if err := kv.FlushData(); err != nil {
			sugar.Warnw("flush_storage_failed", "err", err)
		}
	}

	prom := promsink.New(settings.PrometheusJobName, settings.PrometheusURL)
	if settings.FlushStorage {
		if err := prom.FlushMetrics(); err != nil {
			sugar.Warnw("flush_metrics_failed", "err", err)
		}
	}

	sim := simulation.New(settings, seed, time.Now().Unix())
	if err := sim.Init(); err != nil {
		return fmt.Errorf("init simulation: %w", err)
	}
	sim.KV = kv
	sim.History = storage.KVPriceHistory{KV: kv}
	sim.Metrics = prom

	hub := httpapi.NewHub()
	addr := settings.Address + ":" + settings.Port
	server := httpapi.New(sim, hub, prom, logger, addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("http_server_starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil {
			sugar.Errorw("http_server_stopped", "err", err)
		}
	}()
	defer server.Shutdown()

	sugar.Infow("simulation_starting", "seed", seed, "companies", len(sim.Exchange.Companies), "investors", sim.Exchange.Investors.Len())

	ticker := time.NewTicker(time.Duration(settings.WaitMillis) * time.Millisecond)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			server.BroadcastTick()
		}
	}()

	return sim.Run(ctx)
}

func openKVStore(offline bool, settings simulation.Settings) (storage.KVStore, func(), error) {
	if offline {
		store, err := localkv.Open("data/market-sim.pebble")
		if err != nil {
			return nil, func() {}, err
		}
		return store, func() { store.Close() }, nil
	}

	store, err := rediskv.New(settings.RedisURL)
	if err != nil {
		return nil, func() {}, err
	}
	return store, func() { store.Close() }, nil
}

func printSettingsTable(s simulation.Settings) {
	rows := [][2]string{
		{"flush_storage", fmt.Sprintf("%v", s.FlushStorage)},
		{"max_orders_per_tick", fmt.Sprintf("%d", s.MaxOrdersPerTick)},
		{"address", s.Address},
		{"port", s.Port},
		{"max_investor_age", fmt.Sprintf("%d", s.MaxInvestorAge)},
		{"secs_factor", fmt.Sprintf("%d", s.SecsFactor)},
		{"wait_millis", fmt.Sprintf("%d", s.WaitMillis)},
		{"prometheus_job_name", s.PrometheusJobName},
		{"prometheus_url", s.PrometheusURL},
		{"redis_url", s.RedisURL},
		{"max_duration_seconds", fmt.Sprintf("%d", s.MaxDurationSeconds)},
	}

	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	fmt.Println("market-sim settings")
	for _, row := range rows {
		fmt.Printf("  %-*s  %s\n", width, row[0], row[1])
	}
}
