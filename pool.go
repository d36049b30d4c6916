package srx

import "iter"

// Pool is the archive's object table: every Object reachable from the
// root, keyed by its identity chain's head UID. Its get/insert contracts
// are what make registration idempotent and cycle-safe.
type Pool struct {
	objects map[UID]*Object
}

func newPool() *Pool {
	return &Pool{objects: make(map[UID]*Object)}
}

// Get returns the Object filed under uid. If uid is invalid, it returns a
// fresh invalid placeholder without touching the pool. If uid is valid
// but absent, it inserts and returns a fresh invalid placeholder (so
// callers can always populate-in-place the pointer they get back),
// exactly like the original's ObjectPool::operator[].
func (p *Pool) Get(uid UID) *Object {
	if !uid.Valid() {
		return &Object{}
	}
	if obj, ok := p.objects[uid]; ok {
		return obj
	}
	obj := &Object{UIDs: UIDChain{uid}}
	p.objects[uid] = obj
	return obj
}

// Lookup is like Get but never inserts; it reports whether uid was
// present.
func (p *Pool) Lookup(uid UID) (*Object, bool) {
	obj, ok := p.objects[uid]
	return obj, ok
}

// InsertOrUpgrade files obj under its own head UID unless an entry is
// already present there and is itself valid (non-placeholder): a
// placeholder previously inserted by Get is freely replaced, but a
// genuine object is never clobbered by a later call for the same
// identity. It reports whether it actually inserted/upgraded the slot,
// which the registration walk uses to decide whether to recurse.
func (p *Pool) InsertOrUpgrade(obj *Object) bool {
	uid := obj.UIDs.Head()
	if !uid.Valid() {
		return false
	}
	existing, ok := p.objects[uid]
	if ok && existing.Valid() {
		return false
	}
	p.objects[uid] = obj
	return true
}

// Erase removes uid from the pool. Used by the synchronizer as a cycle
// guard: an object is erased the moment it starts being synced, so a
// later reference to the same identity (via a pointer cycle) finds
// nothing and is treated as already handled.
func (p *Pool) Erase(uid UID) {
	delete(p.objects, uid)
}

// Iterate yields every (UID, *Object) pair currently in the pool.
func (p *Pool) Iterate() iter.Seq2[UID, *Object] {
	return func(yield func(UID, *Object) bool) {
		for uid, obj := range p.objects {
			if !yield(uid, obj) {
				return
			}
		}
	}
}

func (p *Pool) Len() int {
	return len(p.objects)
}
