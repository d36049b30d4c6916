package srx

import (
	"fmt"
	"reflect"
	"sync"
)

// Named lets a user-defined type declare its own schema identity instead
// of deriving CustomTag from the Go type name. This is what makes
// cross-version sync testable within a single Go binary: two distinct Go
// struct types can both report the same ArchiveTypeName and so be treated
// by the synchronizer as "the same class, different version" — the same
// relationship two different builds of one C struct have to each other
// across a real version skew. ArchiveTypeName is called on a nil pointer
// receiver, so implementations must return a constant and never touch the
// receiver.
type Named interface {
	ArchiveTypeName() string
}

var namedInterfaceType = reflect.TypeOf((*Named)(nil)).Elem()

// typeInfoCache memoizes the DataType classification of a reflect.Type so
// repeated registration walks over the same struct don't re-derive its
// shape every time.
var typeInfoCache sync.Map

type typeInfo struct {
	dataType DataType
}

func describeType(t reflect.Type, isPointer bool) DataType {
	if v, ok := typeInfoCache.Load(t); ok {
		dt := v.(*typeInfo).dataType
		dt.IsPointer = isPointer
		return dt
	}
	dt := describeTypeWithoutCache(t)
	typeInfoCache.LoadOrStore(t, &typeInfo{dataType: dt})
	dt.IsPointer = isPointer
	return dt
}

func describeTypeWithoutCache(t reflect.Type) DataType {
	if t.PkgPath() == "" {
		if kind, ok := primitiveBaseKind(t); ok {
			return DataType{BaseKind: kind, Width: int(t.Size())}
		}
	}

	switch t.Kind() {
	case reflect.Struct:
		return DataType{BaseKind: KindClass, CustomTag: customTag(t), Width: int(t.Size())}
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// A named type (not PkgPath == "") over a primitive underlying
		// kind has no analog in the original's base type names: it is
		// the enum case, matching the original's custom_tag modelling
		// of enums as "their own type name over a primitive store".
		return DataType{BaseKind: KindEnum, CustomTag: customTag(t), Width: int(t.Size())}
	default:
		panic(fmt.Errorf("srx: %v: unsupported type kind %v", t, t.Kind()))
	}
}

func primitiveBaseKind(t reflect.Type) (BaseKind, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return KindBool, true
	case reflect.Int8:
		return KindInt8, true
	case reflect.Uint8:
		return KindUint8, true
	case reflect.Int16:
		return KindInt16, true
	case reflect.Uint16:
		return KindUint16, true
	case reflect.Int32:
		return KindInt32, true
	case reflect.Uint32:
		return KindUint32, true
	case reflect.Int64:
		return KindInt64, true
	case reflect.Uint64:
		return KindUint64, true
	case reflect.Float32:
		return KindReal32, true
	case reflect.Float64:
		return KindReal64, true
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		signed := t.Kind() == reflect.Int
		if t.Size() == 4 {
			if signed {
				return KindInt32, true
			}
			return KindUint32, true
		}
		if signed {
			return KindInt64, true
		}
		return KindUint64, true
	default:
		return "", false
	}
}

func customTag(t reflect.Type) string {
	if reflect.PointerTo(t).Implements(namedInterfaceType) {
		named := reflect.Zero(reflect.PointerTo(t)).Interface().(Named)
		return named.ArchiveTypeName()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
