package srx

import "fmt"

// BaseKind is the canonical primitive tag a DataType carries, or one of
// the three structural tags ("class", "enum", "union") for non-primitive
// shapes. It is deliberately a string, not an int, so the wire encoding
// of a DataType is just its fields rendered as blobs.
type BaseKind string

const (
	KindInt8   BaseKind = "int8"
	KindUint8  BaseKind = "uint8"
	KindInt16  BaseKind = "int16"
	KindUint16 BaseKind = "uint16"
	KindInt32  BaseKind = "int32"
	KindUint32 BaseKind = "uint32"
	KindInt64  BaseKind = "int64"
	KindUint64 BaseKind = "uint64"
	KindReal32 BaseKind = "real32"
	KindReal64 BaseKind = "real64"
	KindBool   BaseKind = "bool"
	KindClass  BaseKind = "class"
	KindEnum   BaseKind = "enum"

	// KindUnion exists for wire-format completeness with the original
	// format this engine is compatible with; Go has no native union
	// type, so describeType never produces it.
	KindUnion BaseKind = "union"
)

// DataType is a structural descriptor of a member's or object's shape.
// Two DataTypes are considered the same type iff all four fields are
// equal; there is no notion of assignability or coercion.
type DataType struct {
	BaseKind  BaseKind
	CustomTag string
	Width     int
	IsPointer bool
}

func (t DataType) String() string {
	if t.CustomTag != "" {
		return fmt.Sprintf("%s(%s)/%d%s", t.BaseKind, t.CustomTag, t.Width, ptrSuffix(t.IsPointer))
	}
	return fmt.Sprintf("%s/%d%s", t.BaseKind, t.Width, ptrSuffix(t.IsPointer))
}

func ptrSuffix(isPointer bool) string {
	if isPointer {
		return "*"
	}
	return ""
}

// Less orders DataTypes lexicographically on (BaseKind, CustomTag, Width,
// IsPointer), matching the original format's DataType::operator<. It gives
// member lists a stable sort key when a caller wants deterministic output
// independent of Pool iteration order.
func (t DataType) Less(other DataType) bool {
	if t.BaseKind != other.BaseKind {
		return t.BaseKind < other.BaseKind
	}
	if t.CustomTag != other.CustomTag {
		return t.CustomTag < other.CustomTag
	}
	if t.Width != other.Width {
		return t.Width < other.Width
	}
	return !t.IsPointer && other.IsPointer
}

// Valid reports whether t describes an actual type rather than the
// zero-value placeholder Pool.Get hands back for an unregistered UID.
func (t DataType) Valid() bool {
	return t.BaseKind != "" && t.Width > 0
}

func (t DataType) IsClass() bool {
	return t.BaseKind == KindClass
}

func (t DataType) IsEnum() bool {
	return t.BaseKind == KindEnum
}

func (t DataType) IsUnion() bool {
	return t.BaseKind == KindUnion
}

func (t DataType) IsBool() bool {
	return t.BaseKind == KindBool
}

func (t DataType) IsInteger() bool {
	switch t.BaseKind {
	case KindInt8, KindUint8, KindInt16, KindUint16, KindInt32, KindUint32, KindInt64, KindUint64:
		return true
	default:
		return false
	}
}

func (t DataType) IsReal() bool {
	return t.BaseKind == KindReal32 || t.BaseKind == KindReal64
}

func (t DataType) IsSigned() bool {
	switch t.BaseKind {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindReal32, KindReal64:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether the type is a scalar carried as raw bytes
// rather than a structure with its own members, matching spec.md §3's
// literal is_primitive = !is_class. Enums and unions are both primitive:
// an enum is a named integer and a union is a fixed-width overlay, each
// stored and synced as raw bytes rather than as a set of members.
func (t DataType) IsPrimitive() bool {
	return !t.IsClass()
}
