package srx

import "testing"

func TestPool_GetInsertsPlaceholderForValidUID(t *testing.T) {
	p := newPool()
	uid := UID{Handle: 1, Width: 4}

	obj := p.Get(uid)
	if obj == nil || obj.Valid() {
		t.Fatalf("Get on absent valid uid should return an invalid placeholder, got %+v", obj)
	}
	if p.Len() != 1 {
		t.Fatalf("Get should have inserted a placeholder, Len() = %d", p.Len())
	}

	same := p.Get(uid)
	if same != obj {
		t.Fatalf("Get should return the same placeholder pointer on repeat calls")
	}
}

func TestPool_GetOnInvalidUIDNeverInserts(t *testing.T) {
	p := newPool()
	obj := p.Get(NoUID)
	if obj == nil || obj.Valid() {
		t.Fatalf("Get(NoUID) should return an invalid sentinel")
	}
	if p.Len() != 0 {
		t.Fatalf("Get(NoUID) must not insert, Len() = %d", p.Len())
	}
}

func TestPool_InsertOrUpgrade(t *testing.T) {
	p := newPool()
	uid := UID{Handle: 1, Width: 4}

	placeholder := p.Get(uid)
	_ = placeholder

	valid := &Object{UIDs: UIDChain{uid}, Type: DataType{BaseKind: KindInt32, Width: 4}}
	if fresh := p.InsertOrUpgrade(valid); !fresh {
		t.Fatalf("InsertOrUpgrade should replace an invalid placeholder and report fresh=true")
	}
	got, ok := p.Lookup(uid)
	if !ok || got != valid {
		t.Fatalf("Lookup after InsertOrUpgrade = %+v, %v, wanted the inserted object", got, ok)
	}

	other := &Object{UIDs: UIDChain{uid}, Type: DataType{BaseKind: KindInt64, Width: 8}}
	if fresh := p.InsertOrUpgrade(other); fresh {
		t.Fatalf("InsertOrUpgrade must not clobber an existing valid object")
	}
	got, _ = p.Lookup(uid)
	if got != valid {
		t.Fatalf("existing valid object was overwritten")
	}
}

func TestPool_EraseAndIterate(t *testing.T) {
	p := newPool()
	u1 := UID{Handle: 1, Width: 4}
	u2 := UID{Handle: 2, Width: 4}
	p.InsertOrUpgrade(&Object{UIDs: UIDChain{u1}, Type: DataType{BaseKind: KindInt32, Width: 4}})
	p.InsertOrUpgrade(&Object{UIDs: UIDChain{u2}, Type: DataType{BaseKind: KindInt32, Width: 4}})

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, wanted 2", p.Len())
	}

	p.Erase(u1)
	if p.Len() != 1 {
		t.Fatalf("Len() after Erase = %d, wanted 1", p.Len())
	}
	if _, ok := p.Lookup(u1); ok {
		t.Fatalf("erased uid should no longer be present")
	}

	seen := map[UID]bool{}
	for uid := range p.Iterate() {
		seen[uid] = true
	}
	if !seen[u2] || len(seen) != 1 {
		t.Fatalf("Iterate() saw %v, wanted just {%v}", seen, u2)
	}
}
