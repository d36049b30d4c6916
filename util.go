package srx

import (
	"encoding/hex"
)

// hexstr renders b for a DecodeError's byte preview, ground: edb/util.go's
// identical helper used to log raw key/value bytes.
func hexstr(b []byte) string {
	if b == nil {
		return "<nil>"
	}
	if len(b) == 0 {
		return "<empty>"
	}
	return hex.EncodeToString(b)
}
