package srx

import (
	"strconv"
)

func ensureCapacity(buf []byte, minCap int) []byte {
	c := cap(buf)
	if minCap > c {
		if c < 16 {
			c = 16
		}
		for minCap > c {
			c <<= 1
		}
		old := buf
		buf = make([]byte, len(old), c)
		copy(buf, old)
	}
	return buf
}

func grow(buf []byte, n int) (int, []byte) {
	off := len(buf)
	newLen := off + n
	buf = ensureCapacity(buf, newLen)
	return off, buf[:newLen]
}

func appendRaw(buf []byte, chunk []byte) []byte {
	n := len(chunk)
	off, buf := grow(buf, n)
	copy(buf[off:], chunk)
	return buf
}

// bytesBuilder accumulates the wire bytes of an archive. Every structural
// value (UID, DataType, Member, Object, ...) is flattened through
// appendBlob, which writes the blob's decimal length, a colon, then the
// raw payload — the one primitive the whole codec is built from.
type bytesBuilder struct {
	Buf []byte
}

func (bb *bytesBuilder) appendBlob(payload []byte) {
	bb.Buf = strconv.AppendInt(bb.Buf, int64(len(payload)), 10)
	bb.Buf = append(bb.Buf, ':')
	bb.Buf = appendRaw(bb.Buf, payload)
}

func (bb *bytesBuilder) appendString(s string) {
	bb.appendBlob([]byte(s))
}

func (bb *bytesBuilder) appendInt(v int64) {
	bb.appendBlob(strconv.AppendInt(nil, v, 10))
}

func (bb *bytesBuilder) appendUint(v uint64) {
	bb.appendBlob(strconv.AppendUint(nil, v, 10))
}

func (bb *bytesBuilder) appendBool(v bool) {
	if v {
		bb.appendBlob([]byte{'1'})
	} else {
		bb.appendBlob([]byte{'0'})
	}
}

// byteDecoder walks a buffer of concatenated blobs, one decodeBlob call
// at a time, tracking its offset into the original bytes for error
// reporting.
type byteDecoder struct {
	Orig []byte
	Buf  []byte
}

func makeByteDecoder(buf []byte) byteDecoder {
	return byteDecoder{buf, buf}
}

func (d *byteDecoder) Off() int {
	// Buf is always a subslice of Orig's backing array, so the difference
	// in capacity is Buf's start index within Orig, even for a sub-decoder
	// whose payload ends before Orig does.
	return cap(d.Orig) - cap(d.Buf)
}

func (d *byteDecoder) Len() int {
	return len(d.Buf)
}

// decodeBlob consumes one `<decimal length>:<payload>` blob from the
// front of the buffer, mirroring the original codec's _decodeBlob.
func (d *byteDecoder) decodeBlob() ([]byte, error) {
	if len(d.Buf) == 0 {
		return nil, decodeErrf(d.Orig, d.Off(), nil, "missing blob")
	}
	colon := -1
	for i, b := range d.Buf {
		if b == ':' {
			colon = i
			break
		}
		if b < '0' || b > '9' {
			break
		}
	}
	if colon < 0 {
		return nil, decodeErrf(d.Orig, d.Off(), nil, "malformed blob size")
	}
	n, err := strconv.Atoi(string(d.Buf[:colon]))
	if err != nil || n < 0 {
		return nil, decodeErrf(d.Orig, d.Off(), err, "malformed blob size")
	}
	rest := d.Buf[colon+1:]
	if len(rest) < n {
		return nil, decodeErrf(d.Orig, d.Off(), nil, "premature end of blob")
	}
	payload := rest[:n]
	d.Buf = rest[n:]
	return payload, nil
}

func (d *byteDecoder) decodeString() (string, error) {
	b, err := d.decodeBlob()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *byteDecoder) decodeInt() (int64, error) {
	b, err := d.decodeBlob()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, decodeErrf(d.Orig, d.Off(), err, "malformed integer")
	}
	return v, nil
}

func (d *byteDecoder) decodeUint() (uint64, error) {
	b, err := d.decodeBlob()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, decodeErrf(d.Orig, d.Off(), err, "malformed unsigned integer")
	}
	return v, nil
}

func (d *byteDecoder) decodeBool() (bool, error) {
	b, err := d.decodeBlob()
	if err != nil {
		return false, err
	}
	return len(b) == 1 && b[0] == '1', nil
}

// subDecoder scopes a decoder to exactly payload, so its caller can loop
// "while bytes remain" to decode a list without needing an explicit
// end-of-list sentinel blob.
func subDecoder(orig, payload []byte) byteDecoder {
	return byteDecoder{orig, payload}
}
