package storage

import "fmt"

// KVPriceHistory adapts any KVStore into a PriceHistorySink by
// appending to a per-symbol sorted set, matching the wire format in
// §6: key "price:<SYMBOL>", scored by the virtual timestamp, member
// "<ts>,<avg>".
type KVPriceHistory struct {
	KV KVStore
}

// SaveHistoricPrice appends one observation to the symbol's sorted set.
func (h KVPriceHistory) SaveHistoricPrice(timestamp int64, symbol string, average float64) error {
	member := fmt.Sprintf("%d,%.2f", timestamp, average)
	return h.KV.AppendSortedSet("price:"+symbol, uint64(timestamp), member)
}
