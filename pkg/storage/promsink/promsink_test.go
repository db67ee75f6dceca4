package promsink

import (
	"strings"
	"testing"

	"github.com/hkex/market-sim/pkg/storage"
)

func TestGetMetricsText_UnlabeledMetric(t *testing.T) {
	s := New("market-sim", "http://localhost:9091")
	text, err := s.GetMetricsText("market_sim", []storage.Metric{
		storage.Simple("investors_count", 1000),
	})
	if err != nil {
		t.Fatalf("GetMetricsText: %v", err)
	}
	want := "market_sim_investors_count 1000\n"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestGetMetricsText_LabeledMetricSortsKeys(t *testing.T) {
	s := New("market-sim", "http://localhost:9091")
	text, err := s.GetMetricsText("market_sim", []storage.Metric{
		{
			Name:  "price_ask",
			Value: 42.5,
			Labels: map[string]string{
				"symbol": "ABCD",
				"name":   "Acme Corp",
			},
		},
	})
	if err != nil {
		t.Fatalf("GetMetricsText: %v", err)
	}
	want := `market_sim_price_ask{name="Acme Corp",symbol="ABCD"} 42.5` + "\n"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestGetMetricsText_MultipleMetricsOneLineEach(t *testing.T) {
	s := New("market-sim", "http://localhost:9091")
	text, err := s.GetMetricsText("market_sim", []storage.Metric{
		storage.Simple("a", 1),
		storage.Simple("b", 2),
	})
	if err != nil {
		t.Fatalf("GetMetricsText: %v", err)
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), text)
	}
}
