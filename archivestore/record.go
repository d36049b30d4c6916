package archivestore

import (
	"bytes"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// record is the msgpack-encoded bbolt value: the archive's opaque Srx1v
// bytes plus a denormalized copy of its metadata, so List doesn't need to
// decode every archive body just to show a name and a timestamp.
type record struct {
	Name       string
	Comment    string
	CreatedAt  int64
	ModifiedAt int64
	Data       []byte
}

// encodeRecord and decodeRecord mirror the teacher's own MsgPack
// encodingMethod: a pooled encoder/decoder pair driven over a
// reflect.Value, rather than hand-rolled field-by-field serialization.
func encodeRecord(rec record) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.ResetDict(&buf, nil)
	enc.SetSortMapKeys(true)
	err := enc.EncodeValue(reflect.ValueOf(rec))
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(raw []byte) (record, error) {
	var r bytes.Reader
	r.Reset(raw)
	var rec record
	dec := msgpack.GetDecoder()
	dec.ResetDict(&r, nil)
	err := dec.DecodeValue(reflect.ValueOf(&rec))
	msgpack.PutDecoder(dec)
	if err != nil {
		return record{}, err
	}
	return rec, nil
}
