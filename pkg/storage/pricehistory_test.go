package storage

import "testing"

type fakeKV struct {
	appended []struct {
		key    string
		score  uint64
		member string
	}
}

func (f *fakeKV) AppendSortedSet(key string, score uint64, member string) error {
	f.appended = append(f.appended, struct {
		key    string
		score  uint64
		member string
	}{key, score, member})
	return nil
}
func (f *fakeKV) SaveKey(key, value string) error            { return nil }
func (f *fakeKV) LoadKey(key string) (string, bool, error)    { return "", false, nil }
func (f *fakeKV) FlushData() error                            { return nil }

func TestKVPriceHistory_SaveHistoricPrice(t *testing.T) {
	kv := &fakeKV{}
	h := KVPriceHistory{KV: kv}

	if err := h.SaveHistoricPrice(1000, "ABCD", 42.5); err != nil {
		t.Fatalf("SaveHistoricPrice: %v", err)
	}

	if len(kv.appended) != 1 {
		t.Fatalf("got %d appends, want 1", len(kv.appended))
	}
	got := kv.appended[0]
	if got.key != "price:ABCD" {
		t.Errorf("key = %q, want price:ABCD", got.key)
	}
	if got.score != 1000 {
		t.Errorf("score = %d, want 1000", got.score)
	}
	if got.member != "1000,42.50" {
		t.Errorf("member = %q, want 1000,42.50", got.member)
	}
}
