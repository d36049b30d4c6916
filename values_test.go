package srx

import "testing"

// ScalarHolder exercises every scalar accessor kind the testable
// properties care about: an integer narrower than int64, an unsigned
// integer, a 32-bit real, and a bool.
type ScalarHolder struct {
	I8  int8
	U32 uint32
	F32 float32
	On  bool
}

func (s *ScalarHolder) Serialize(ar *Archive) {
	ar.Member(s, &s.I8, "I8")
	ar.Member(s, &s.U32, "U32")
	ar.Member(s, &s.F32, "F32")
	ar.Member(s, &s.On, "On")
}

func decodedScalarObject(t *testing.T, name string, src *ScalarHolder) (*Archive, *Object) {
	t.Helper()
	ar := New()
	if err := ar.Serialize(src); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	data, err := ar.RawBytes()
	if err != nil {
		t.Fatalf("RawBytes: %v", err)
	}
	ar2, err := NewFromBytes(data)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	m := ar2.RootObject().MemberNamed(name)
	if !m.Valid() {
		t.Fatalf("no member named %q", name)
	}
	obj := ar2.ObjectByUID(m.UID)
	if obj == nil {
		t.Fatalf("no object for member %q", name)
	}
	return ar2, obj
}

// TestValues_SetIntValueTruncatesToDestinationWidth exercises the
// width-portable property: SetIntValue writes only as many bytes as the
// destination's own type carries, truncating a wider input value the
// same way an assignment into a narrower C integer would.
func TestValues_SetIntValueTruncatesToDestinationWidth(t *testing.T) {
	ar, obj := decodedScalarObject(t, "I8", &ScalarHolder{I8: 5})

	if err := ar.SetIntValue(obj, 300); err != nil {
		t.Fatalf("SetIntValue: %v", err)
	}
	got, err := ar.ValueAsString(obj)
	if err != nil {
		t.Fatalf("ValueAsString: %v", err)
	}
	if got != "44" {
		t.Fatalf("ValueAsString = %q, wanted %q (300 truncated to int8)", got, "44")
	}
}

func TestValues_SetIntValueOnUnsignedWidth(t *testing.T) {
	ar, obj := decodedScalarObject(t, "U32", &ScalarHolder{U32: 1})

	if err := ar.SetIntValue(obj, 1<<32+7); err != nil {
		t.Fatalf("SetIntValue: %v", err)
	}
	got, err := ar.ValueAsString(obj)
	if err != nil {
		t.Fatalf("ValueAsString: %v", err)
	}
	if got != "7" {
		t.Fatalf("ValueAsString = %q, wanted %q (wrapped to uint32)", got, "7")
	}
}

func TestValues_SetRealValueWidth32(t *testing.T) {
	ar, obj := decodedScalarObject(t, "F32", &ScalarHolder{F32: 1})

	if err := ar.SetRealValue(obj, 3.5); err != nil {
		t.Fatalf("SetRealValue: %v", err)
	}
	got, err := ar.ValueAsString(obj)
	if err != nil {
		t.Fatalf("ValueAsString: %v", err)
	}
	if got != "3.5" {
		t.Fatalf("ValueAsString = %q, wanted %q", got, "3.5")
	}
}

func TestValues_SetBoolValue(t *testing.T) {
	ar, obj := decodedScalarObject(t, "On", &ScalarHolder{On: false})

	if err := ar.SetBoolValue(obj, true); err != nil {
		t.Fatalf("SetBoolValue: %v", err)
	}
	got, err := ar.ValueAsString(obj)
	if err != nil {
		t.Fatalf("ValueAsString: %v", err)
	}
	if got != "true" {
		t.Fatalf("ValueAsString = %q, wanted %q", got, "true")
	}
}

func TestValues_SetAutoValueDispatchesByType(t *testing.T) {
	ar, obj := decodedScalarObject(t, "I8", &ScalarHolder{I8: 1})
	if err := ar.SetAutoValue(obj, "9"); err != nil {
		t.Fatalf("SetAutoValue: %v", err)
	}
	got, err := ar.ValueAsString(obj)
	if err != nil {
		t.Fatalf("ValueAsString: %v", err)
	}
	if got != "9" {
		t.Fatalf("ValueAsString = %q, wanted %q", got, "9")
	}

	if err := ar.SetAutoValue(obj, "not-a-number"); err == nil {
		t.Fatalf("SetAutoValue with bad input: expected an error")
	}
}

func TestValues_SetIntValueRejectsNonIntegerType(t *testing.T) {
	ar, obj := decodedScalarObject(t, "F32", &ScalarHolder{F32: 1})
	if err := ar.SetIntValue(obj, 1); err == nil {
		t.Fatalf("SetIntValue on a real-typed object: expected an error")
	}
}

func TestValues_ValueAsInt(t *testing.T) {
	ar, obj := decodedScalarObject(t, "I8", &ScalarHolder{I8: -5})
	iv, err := ar.ValueAsInt(obj)
	if err != nil {
		t.Fatalf("ValueAsInt: %v", err)
	}
	if iv != -5 {
		t.Fatalf("ValueAsInt = %d, wanted -5", iv)
	}
}

func TestValues_ValueAsReal(t *testing.T) {
	ar, obj := decodedScalarObject(t, "F32", &ScalarHolder{F32: 2.5})
	rv, err := ar.ValueAsReal(obj)
	if err != nil {
		t.Fatalf("ValueAsReal: %v", err)
	}
	if rv != 2.5 {
		t.Fatalf("ValueAsReal = %v, wanted 2.5", rv)
	}
}

func TestValues_ValueAsBool(t *testing.T) {
	ar, obj := decodedScalarObject(t, "On", &ScalarHolder{On: true})
	bv, err := ar.ValueAsBool(obj)
	if err != nil {
		t.Fatalf("ValueAsBool: %v", err)
	}
	if !bv {
		t.Fatalf("ValueAsBool = false, wanted true")
	}

	if _, err := ar.ValueAsInt(obj); err == nil {
		t.Fatalf("ValueAsInt on a bool-typed object: expected an error")
	}
}
