package srx

import (
	"encoding/binary"
	"math"
	"strconv"
	"unsafe"
)

// readScalarBytes returns the current raw bytes backing obj: its decoded
// RawBytes if it came from the wire, or a live snapshot of process
// memory at its identity's handle otherwise. Never returns a slice that
// aliases live memory when FromWire is true, since that handle is a
// foreign token that must not be dereferenced.
func (ar *Archive) readScalarBytes(obj *Object) []byte {
	if obj.FromWire {
		return obj.RawBytes
	}
	uid := obj.UID()
	if !uid.Valid() {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uid.Handle)), uid.Width)
}

// writeScalarBytes writes width bytes into obj's backing store: its own
// RawBytes slice if it came from the wire, or directly into the live
// process memory its identity names otherwise. This is the mechanism
// behind SetIntValue and friends: a manual, width-portable override that
// bypasses the normal cross-object type-equality-gated sync.
func (ar *Archive) writeScalarBytes(obj *Object, write func([]byte)) error {
	width := obj.Type.Width
	if obj.FromWire {
		if len(obj.RawBytes) != width {
			obj.RawBytes = make([]byte, width)
		}
		write(obj.RawBytes)
		ar.touch()
		return nil
	}
	uid := obj.UID()
	if !uid.Valid() {
		return errf(ErrSemantic, nil, "mutator: invalid object identity")
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(uid.Handle)), width)
	write(buf)
	ar.touch()
	return nil
}

func (ar *Archive) SetIntValue(obj *Object, v int64) error {
	if !obj.Type.IsInteger() && !obj.Type.IsEnum() {
		return errf(ErrSemantic, nil, "SetIntValue: not an integer/enum type: %v", obj.Type)
	}
	return ar.writeScalarBytes(obj, func(b []byte) { putInt(b, v) })
}

func (ar *Archive) SetEnumValue(obj *Object, v int64) error {
	if !obj.Type.IsEnum() {
		return errf(ErrSemantic, nil, "SetEnumValue: not an enum type: %v", obj.Type)
	}
	return ar.writeScalarBytes(obj, func(b []byte) { putInt(b, v) })
}

func (ar *Archive) SetRealValue(obj *Object, v float64) error {
	if !obj.Type.IsReal() {
		return errf(ErrSemantic, nil, "SetRealValue: not a real type: %v", obj.Type)
	}
	return ar.writeScalarBytes(obj, func(b []byte) {
		switch obj.Type.Width {
		case 4:
			binary.NativeEndian.PutUint32(b, math.Float32bits(float32(v)))
		case 8:
			binary.NativeEndian.PutUint64(b, math.Float64bits(v))
		}
	})
}

func (ar *Archive) SetBoolValue(obj *Object, v bool) error {
	if !obj.Type.IsBool() {
		return errf(ErrSemantic, nil, "SetBoolValue: not a bool type: %v", obj.Type)
	}
	return ar.writeScalarBytes(obj, func(b []byte) {
		if v {
			b[0] = 1
		} else {
			b[0] = 0
		}
	})
}

// SetAutoValue parses s according to obj's type and applies it, picking
// the right setter the way a generic "set from string" entry point must.
func (ar *Archive) SetAutoValue(obj *Object, s string) error {
	switch {
	case obj.Type.IsBool():
		v, err := strconv.ParseBool(s)
		if err != nil {
			return errf(ErrSemantic, err, "SetAutoValue: not a bool: %q", s)
		}
		return ar.SetBoolValue(obj, v)
	case obj.Type.IsReal():
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errf(ErrSemantic, err, "SetAutoValue: not a real: %q", s)
		}
		return ar.SetRealValue(obj, v)
	case obj.Type.IsInteger() || obj.Type.IsEnum():
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errf(ErrSemantic, err, "SetAutoValue: not an integer: %q", s)
		}
		return ar.SetIntValue(obj, v)
	default:
		return errf(ErrSemantic, nil, "SetAutoValue: unsupported type: %v", obj.Type)
	}
}

func (ar *Archive) SetVersion(obj *Object, version uint32) {
	obj.Version = version
	ar.touch()
}

func (ar *Archive) SetMinCompatibleVersion(obj *Object, version uint32) {
	obj.MinCompatVer = version
	ar.touch()
}

// ValueAsString renders obj's current scalar value as a human-readable
// string, in the same textual form the wire codec uses for it, except
// that booleans render as "true"/"false" rather than the wire's "1"/"0".
func (ar *Archive) ValueAsString(obj *Object) (string, error) {
	b := ar.readScalarBytes(obj)
	if b == nil {
		return "", errf(ErrSemantic, nil, "ValueAsString: no value for %v", obj.Type)
	}
	switch {
	case obj.Type.IsBool():
		if len(b) > 0 && b[0] != 0 {
			return "true", nil
		}
		return "false", nil
	case obj.Type.IsReal():
		switch obj.Type.Width {
		case 4:
			return strconv.FormatFloat(float64(math.Float32frombits(binary.NativeEndian.Uint32(b))), 'g', -1, 32), nil
		case 8:
			return strconv.FormatFloat(math.Float64frombits(binary.NativeEndian.Uint64(b)), 'g', -1, 64), nil
		}
	case obj.Type.IsInteger() || obj.Type.IsEnum():
		return strconv.FormatInt(getInt(b, obj.Type.IsSigned()), 10), nil
	}
	return "", errf(ErrSemantic, nil, "ValueAsString: unsupported type: %v", obj.Type)
}

// ValueAsInt reads obj's current value as a signed integer, following the
// same width/signedness rules ValueAsString uses for its integer branch.
// Valid for integer and enum types only.
func (ar *Archive) ValueAsInt(obj *Object) (int64, error) {
	if !obj.Type.IsInteger() && !obj.Type.IsEnum() {
		return 0, errf(ErrSemantic, nil, "ValueAsInt: not an integer/enum type: %v", obj.Type)
	}
	b := ar.readScalarBytes(obj)
	if b == nil {
		return 0, errf(ErrSemantic, nil, "ValueAsInt: no value for %v", obj.Type)
	}
	return getInt(b, obj.Type.IsSigned()), nil
}

// ValueAsReal reads obj's current value as a float64, widening a real32
// the same way SetRealValue narrows one. Valid for real types only.
func (ar *Archive) ValueAsReal(obj *Object) (float64, error) {
	if !obj.Type.IsReal() {
		return 0, errf(ErrSemantic, nil, "ValueAsReal: not a real type: %v", obj.Type)
	}
	b := ar.readScalarBytes(obj)
	if b == nil {
		return 0, errf(ErrSemantic, nil, "ValueAsReal: no value for %v", obj.Type)
	}
	switch obj.Type.Width {
	case 4:
		return float64(math.Float32frombits(binary.NativeEndian.Uint32(b))), nil
	case 8:
		return math.Float64frombits(binary.NativeEndian.Uint64(b)), nil
	default:
		return 0, errf(ErrSemantic, nil, "ValueAsReal: unsupported width %d", obj.Type.Width)
	}
}

// ValueAsBool reads obj's current value as a bool. Valid for bool types
// only.
func (ar *Archive) ValueAsBool(obj *Object) (bool, error) {
	if !obj.Type.IsBool() {
		return false, errf(ErrSemantic, nil, "ValueAsBool: not a bool type: %v", obj.Type)
	}
	b := ar.readScalarBytes(obj)
	if b == nil {
		return false, errf(ErrSemantic, nil, "ValueAsBool: no value for %v", obj.Type)
	}
	return len(b) > 0 && b[0] != 0, nil
}

func putInt(b []byte, v int64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.NativeEndian.PutUint16(b, uint16(v))
	case 4:
		binary.NativeEndian.PutUint32(b, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(b, uint64(v))
	}
}

// renderPrimitiveWireValue renders the native-width bytes raw (as read
// from live memory or a prior decode) as the decimal-ASCII form spec.md
// §4.4 mandates for a primitive-value blob: booleans as "0"/"1", reals
// via Go's default shortest round-tripping float format, everything else
// (including 1-byte ints, conceptually widened to 16 bits first so a
// small value is never mistaken for a character literal, which in Go's
// decimal rendering never matters since strconv always prints a number)
// as decimal, signed or unsigned by the type's signedness; a uint64 at or
// above 2^63 comes out as its negative int64 reading, which
// parsePrimitiveWireValue turns back into the same bits. Returns nil for
// a non-primitive or pointer
// type, which the caller writes out as an empty blob.
func renderPrimitiveWireValue(t DataType, raw []byte) []byte {
	if !t.IsPrimitive() || t.IsPointer || len(raw) == 0 {
		return nil
	}
	switch {
	case t.IsBool():
		if raw[0] != 0 {
			return []byte{'1'}
		}
		return []byte{'0'}
	case t.IsReal():
		switch t.Width {
		case 4:
			f := math.Float32frombits(binary.NativeEndian.Uint32(raw))
			return strconv.AppendFloat(nil, float64(f), 'g', -1, 32)
		case 8:
			f := math.Float64frombits(binary.NativeEndian.Uint64(raw))
			return strconv.AppendFloat(nil, f, 'g', -1, 64)
		}
		return nil
	case t.IsInteger() || t.IsEnum():
		return strconv.AppendInt(nil, getInt(raw, t.IsSigned()), 10)
	default:
		return nil
	}
}

// parsePrimitiveWireValue is renderPrimitiveWireValue's inverse: given the
// decimal-ASCII blob just decoded off the wire and the type descriptor
// decoded alongside it, it produces t.Width raw bytes in the host's
// native layout, exactly as decode's rule 4 requires ("raw_bytes are
// populated by parsing the primitive blob into the native width dictated
// by the decoded type descriptor").
func parsePrimitiveWireValue(t DataType, ascii []byte) ([]byte, error) {
	if len(ascii) == 0 {
		return nil, nil
	}
	buf := make([]byte, t.Width)
	switch {
	case t.IsBool():
		if len(ascii) == 1 && ascii[0] == '1' {
			buf[0] = 1
		}
		return buf, nil
	case t.IsReal():
		v, err := strconv.ParseFloat(string(ascii), 64)
		if err != nil {
			return nil, err
		}
		switch t.Width {
		case 4:
			binary.NativeEndian.PutUint32(buf, math.Float32bits(float32(v)))
		case 8:
			binary.NativeEndian.PutUint64(buf, math.Float64bits(v))
		}
		return buf, nil
	case t.IsInteger() || t.IsEnum():
		v, err := strconv.ParseInt(string(ascii), 10, 64)
		if err != nil {
			return nil, err
		}
		putInt(buf, v)
		return buf, nil
	default:
		return nil, nil
	}
}

func getInt(b []byte, signed bool) int64 {
	switch len(b) {
	case 1:
		if signed {
			return int64(int8(b[0]))
		}
		return int64(b[0])
	case 2:
		v := binary.NativeEndian.Uint16(b)
		if signed {
			return int64(int16(v))
		}
		return int64(v)
	case 4:
		v := binary.NativeEndian.Uint32(b)
		if signed {
			return int64(int32(v))
		}
		return int64(v)
	case 8:
		v := binary.NativeEndian.Uint64(b)
		if signed {
			return int64(v)
		}
		return int64(v)
	default:
		return 0
	}
}
