package market

import "testing"

func TestCompanySymbol_Validate(t *testing.T) {
	tests := []struct {
		name    string
		symbol  CompanySymbol
		wantErr bool
	}{
		{"valid", "ABCD", false},
		{"empty", "", true},
		{"contains digit", "AB12", true},
		{"contains space", "AB CD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.symbol.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.symbol, err, tt.wantErr)
			}
		})
	}
}

func TestListedCompany_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lc      ListedCompany
		wantErr bool
	}{
		{"valid", ListedCompany{LotSize: 100, TotalStocks: 2000}, false},
		{"zero lot size", ListedCompany{LotSize: 0, TotalStocks: 2000}, true},
		{"zero total", ListedCompany{LotSize: 100, TotalStocks: 0}, true},
		{"not divisible", ListedCompany{LotSize: 100, TotalStocks: 2050}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.lc.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.lc, err, tt.wantErr)
			}
		})
	}
}

func TestCompanies_SymbolsSorted(t *testing.T) {
	companies := Companies{
		"ZETA":  {Name: "Zeta Corp", Symbol: "ZETA"},
		"ALPHA": {Name: "Alpha Corp", Symbol: "ALPHA"},
		"MID":   {Name: "Mid Corp", Symbol: "MID"},
	}
	got := companies.Symbols()
	want := []CompanySymbol{"ALPHA", "MID", "ZETA"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
