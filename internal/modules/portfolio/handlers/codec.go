package handlers

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/strategy-builder/internal/modules/portfolio"
)

// EncodeSnapshot serialises a snapshot to MessagePack, keyed by the JSON field names
func EncodeSnapshot(snapshot portfolio.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(snapshot); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
