package srx

import "testing"

func TestDataType_Predicates(t *testing.T) {
	i32 := DataType{BaseKind: KindInt32, Width: 4}
	if !i32.IsInteger() || !i32.IsSigned() || i32.IsReal() || i32.IsBool() || i32.IsEnum() || i32.IsClass() {
		t.Fatalf("int32 predicates wrong: %+v", i32)
	}
	if !i32.IsPrimitive() {
		t.Fatalf("int32 should be primitive")
	}

	u8 := DataType{BaseKind: KindUint8, Width: 1}
	if !u8.IsInteger() || u8.IsSigned() {
		t.Fatalf("uint8 predicates wrong: %+v", u8)
	}

	r64 := DataType{BaseKind: KindReal64, Width: 8}
	if !r64.IsReal() || !r64.IsSigned() || r64.IsInteger() {
		t.Fatalf("real64 predicates wrong: %+v", r64)
	}

	b := DataType{BaseKind: KindBool, Width: 1}
	if !b.IsBool() || b.IsInteger() || b.IsSigned() {
		t.Fatalf("bool predicates wrong: %+v", b)
	}

	en := DataType{BaseKind: KindEnum, CustomTag: "pkg.Color", Width: 4}
	if !en.IsEnum() || !en.IsPrimitive() || en.IsClass() {
		t.Fatalf("enum predicates wrong: %+v", en)
	}

	cls := DataType{BaseKind: KindClass, CustomTag: "pkg.Point", Width: 16}
	if !cls.IsClass() || cls.IsPrimitive() {
		t.Fatalf("class predicates wrong: %+v", cls)
	}

	un := DataType{BaseKind: KindUnion, Width: 8}
	if !un.IsUnion() || !un.IsPrimitive() {
		t.Fatalf("union predicates wrong: %+v", un)
	}
}

func TestDataType_EqualityIsStructural(t *testing.T) {
	a := DataType{BaseKind: KindInt32, Width: 4}
	b := DataType{BaseKind: KindInt32, Width: 4}
	c := DataType{BaseKind: KindInt32, Width: 4, IsPointer: true}
	d := DataType{BaseKind: KindInt64, Width: 8}

	if a != b {
		t.Fatalf("identical DataTypes should be ==")
	}
	if a == c {
		t.Fatalf("IsPointer must participate in equality")
	}
	if a == d {
		t.Fatalf("differently kinded DataTypes must not be ==")
	}
}

func TestDataType_Less(t *testing.T) {
	a := DataType{BaseKind: KindInt32, Width: 4}
	b := DataType{BaseKind: KindInt64, Width: 8}
	if !a.Less(b) {
		t.Fatalf("int32 should sort before int64")
	}
	if b.Less(a) {
		t.Fatalf("int64 should not sort before int32")
	}

	same := DataType{BaseKind: KindInt32, Width: 4}
	if a.Less(same) || same.Less(a) {
		t.Fatalf("equal DataTypes should not be Less of each other")
	}

	ptr := DataType{BaseKind: KindInt32, Width: 4, IsPointer: true}
	if !a.Less(ptr) {
		t.Fatalf("non-pointer should sort before pointer of otherwise-equal type")
	}
}
