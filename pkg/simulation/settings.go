package simulation

import (
	"encoding/json"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/hkex/market-sim/pkg/storage"
)

// Settings is the merged configuration surface: CLI flags override a
// discovered market-sim-settings.json file, which overrides the
// defaults below.
type Settings struct {
	FlushStorage     bool   `json:"flush_storage"`
	MaxOrdersPerTick uint64 `json:"max_orders_per_tick"`
	Address          string `json:"address"`
	Port             string `json:"port"`
	MaxInvestorAge   uint   `json:"max_investor_age"`
	SecsFactor       int64  `json:"secs_factor"`
	WaitMillis       int64  `json:"wait_millis"`
	PrometheusJobName string `json:"prometheus_job_name"`
	PrometheusURL    string `json:"prometheus_url"`
	RedisURL         string `json:"redis_url"`
	// MaxDurationSeconds is the one stop condition the driver honors: 0
	// means run until the process is killed.
	MaxDurationSeconds uint64 `json:"max_duration_seconds"`
}

// DefaultSettings matches the engine's documented defaults.
func DefaultSettings() Settings {
	return Settings{
		FlushStorage:      false,
		MaxOrdersPerTick:  4000,
		Address:           "0.0.0.0",
		Port:              "9000",
		MaxInvestorAge:    100,
		SecsFactor:        2700,
		WaitMillis:        1000,
		PrometheusJobName: "market-sim",
		PrometheusURL:     "http://localhost:9090",
		RedisURL:          "redis://127.0.0.1",
	}
}

// LoadSettings merges, in increasing priority: defaults, an on-disk
// config file discovered by reader, and CLI flags already parsed into
// flags. It also loads an optional .env file into the process
// environment; no setting is read from environment variables.
func LoadSettings(reader storage.ConfigFileReader, flags *pflag.FlagSet) (Settings, error) {
	_ = godotenv.Load()

	settings := DefaultSettings()

	if reader != nil {
		if contents, ok, err := reader.ReadConfigFile(); err != nil {
			return Settings{}, err
		} else if ok {
			if err := json.Unmarshal([]byte(contents), &settings); err != nil {
				return Settings{}, err
			}
		}
	}

	applyFlagOverrides(&settings, flags)
	return settings, nil
}

func applyFlagOverrides(settings *Settings, flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	if flags.Changed("flush_storage") {
		settings.FlushStorage, _ = flags.GetBool("flush_storage")
	}
	if flags.Changed("max_orders_per_tick") {
		settings.MaxOrdersPerTick, _ = flags.GetUint64("max_orders_per_tick")
	}
	if flags.Changed("address") {
		settings.Address, _ = flags.GetString("address")
	}
	if flags.Changed("port") {
		settings.Port, _ = flags.GetString("port")
	}
	if flags.Changed("redis-url") {
		settings.RedisURL, _ = flags.GetString("redis-url")
	}
	if flags.Changed("prometheus-url") {
		settings.PrometheusURL, _ = flags.GetString("prometheus-url")
	}
	if flags.Changed("max_duration_seconds") {
		settings.MaxDurationSeconds, _ = flags.GetUint64("max_duration_seconds")
	}
}

// RegisterFlags attaches the start command's flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := DefaultSettings()
	flags.Bool("flush_storage", d.FlushStorage, "flush KV storage and metrics before starting")
	flags.Uint64("max_orders_per_tick", d.MaxOrdersPerTick, "upper bound on synthetic orders generated per tick")
	flags.String("address", d.Address, "HTTP bind address")
	flags.String("port", d.Port, "HTTP bind port")
	flags.String("redis-url", d.RedisURL, "Redis connection URL")
	flags.String("prometheus-url", d.PrometheusURL, "Prometheus push-gateway URL")
	flags.Uint64("max_duration_seconds", 0, "stop the simulation after this many real seconds (0 = unbounded)")
}
