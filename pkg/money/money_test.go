package money

import "testing"

func TestNew_RoundsToNearestCentAndRejectsNegative(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    float64
		wantErr bool
	}{
		{"whole number", 50, 50, false},
		{"two decimals", 12.34, 12.34, false},
		{"rounds to nearest cent", 12.345, 12.35, false},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(HKD, tt.amount)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%v) error = %v, wantErr %v", tt.amount, err, tt.wantErr)
			}
			if err == nil && got.Value() != tt.want {
				t.Errorf("New(%v).Value() = %v, want %v", tt.amount, got.Value(), tt.want)
			}
		})
	}
}

func TestAdd_PanicsOnCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Add to panic on currency mismatch")
		}
	}()
	a, _ := New(HKD, 10)
	b := Money{Currency: "USD", cents: 1000}
	a.Add(b)
}

func TestAdd_Sub(t *testing.T) {
	a, _ := New(HKD, 10.50)
	b, _ := New(HKD, 5.25)

	sum := a.Add(b)
	if sum.Value() != 15.75 {
		t.Errorf("Add: got %v, want 15.75", sum.Value())
	}

	diff := a.Sub(b)
	if diff.Value() != 5.25 {
		t.Errorf("Sub: got %v, want 5.25", diff.Value())
	}
}

func TestSub_ClampsAtZero(t *testing.T) {
	a, _ := New(HKD, 5)
	b, _ := New(HKD, 10)

	diff := a.Sub(b)
	if diff.Value() != 0 {
		t.Errorf("Sub below zero: got %v, want 0", diff.Value())
	}
}

func TestGreaterOrEqual(t *testing.T) {
	a, _ := New(HKD, 10)
	b, _ := New(HKD, 10)
	c, _ := New(HKD, 9.99)

	if !a.GreaterOrEqual(b) {
		t.Error("expected equal amounts to be GreaterOrEqual")
	}
	if !a.GreaterOrEqual(c) {
		t.Error("expected 10 to be GreaterOrEqual 9.99")
	}
	if c.GreaterOrEqual(a) {
		t.Error("expected 9.99 to not be GreaterOrEqual 10")
	}
}

func TestMulFloat(t *testing.T) {
	a, _ := New(HKD, 4.5)
	got := a.MulFloat(3)
	if got.Value() != 13.5 {
		t.Errorf("MulFloat: got %v, want 13.5", got.Value())
	}
}

func TestAverage(t *testing.T) {
	a, _ := New(HKD, 10)
	b, _ := New(HKD, 20)
	avg := Average([]Money{a, b})
	if avg.Value() != 15 {
		t.Errorf("Average: got %v, want 15", avg.Value())
	}
}

func TestMarshalUnmarshalJSON(t *testing.T) {
	a, _ := New(HKD, 42.5)
	data, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var b Money
	b.Currency = HKD
	if err := b.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if b.Value() != a.Value() {
		t.Errorf("round-trip: got %v, want %v", b.Value(), a.Value())
	}
}
