package archivestore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/srxfmt/srx"
)

type widget struct {
	Count int32
	Scale float64
}

func (w *widget) Serialize(ar *srx.Archive) {
	ar.Member(w, &w.Count, "Count")
	ar.Member(w, &w.Scale, "Scale")
}

func setup(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archives.db")
	st, err := Open(path, Options{IsTesting: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	st := setup(t)

	src := &widget{Count: 7}
	ar := srx.New()
	ar.SetName("widgets/7")
	ar.SetComment("a test fixture")
	if err := ar.Serialize(src); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := st.Put("w7", ar); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := st.Get("w7")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	dst := &widget{}
	if err := got.Deserialize(dst); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if dst.Count != 7 {
		t.Fatalf("dst.Count = %d, wanted 7", dst.Count)
	}
}

func TestStore_MetaWithoutDecodingBody(t *testing.T) {
	st := setup(t)

	ar := srx.New()
	ar.SetName("first")
	ar.SetComment("hello")
	if err := ar.Serialize(&widget{Count: 1}); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := st.Put("k1", ar); err != nil {
		t.Fatalf("Put: %v", err)
	}

	meta, err := st.Meta("k1")
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Name != "first" || meta.Comment != "hello" {
		t.Fatalf("meta = %+v, wanted Name=first Comment=hello", meta)
	}
}

func TestStore_GetMissingKeyReturnsErrNotFound(t *testing.T) {
	st := setup(t)

	_, err := st.Get("absent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, wanted ErrNotFound", err)
	}
}

func TestStore_DeleteThenList(t *testing.T) {
	st := setup(t)

	for _, key := range []string{"a", "b", "c"} {
		ar := srx.New()
		ar.SetName(key)
		if err := ar.Serialize(&widget{Count: 1}); err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if err := st.Put(key, ar); err != nil {
			t.Fatalf("Put(%q): %v", key, err)
		}
	}

	if err := st.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	metas, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d records, wanted 2", len(metas))
	}
	for _, m := range metas {
		if m.Key == "b" {
			t.Fatalf("deleted key %q still present in List", m.Key)
		}
	}
}

func TestStore_DeleteAbsentKeyIsNotAnError(t *testing.T) {
	st := setup(t)
	if err := st.Delete("never-existed"); err != nil {
		t.Fatalf("Delete on absent key: %v", err)
	}
}

func TestStore_PutOverwritesExistingRecord(t *testing.T) {
	st := setup(t)

	ar1 := srx.New()
	ar1.SetName("v1")
	if err := ar1.Serialize(&widget{Count: 1}); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := st.Put("k", ar1); err != nil {
		t.Fatalf("Put: %v", err)
	}

	ar2 := srx.New()
	ar2.SetName("v2")
	if err := ar2.Serialize(&widget{Count: 2}); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := st.Put("k", ar2); err != nil {
		t.Fatalf("Put: %v", err)
	}

	meta, err := st.Meta("k")
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Name != "v2" {
		t.Fatalf("meta.Name = %q, wanted %q (Put should overwrite)", meta.Name, "v2")
	}
}
