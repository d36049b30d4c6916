package srx

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"
)

// Serializable is implemented by any type that wants to participate in
// an archive's object graph. The same method runs on encode (walking a
// live graph to capture it) and on decode (walking a live destination
// graph so the synchronizer has something to write into) — there is no
// separate "read" method, matching how the original format's descriptor
// routines work.
type Serializable interface {
	Serialize(ar *Archive)
}

// Versioned is an optional extension of Serializable: a type that wants
// its objects tagged with an explicit schema version and minimum
// compatible version implements it. Types that don't are treated as
// version 0, minimum compatible version 0.
type Versioned interface {
	ArchiveVersion() (version, minCompatible uint32)
}

// TimeBase selects the calendar epoch used by DateTimeCreated and
// DateTimeModified. Only TimeBaseUnix is implemented; the type exists so
// a caller's intent is explicit at the call site, the same way the
// original format names its time bases.
type TimeBase int

const (
	TimeBaseUnix TimeBase = iota
)

// Archive is the unit of serialization: one object graph, its pool of
// reflected objects, and the small set of named metadata fields (name,
// comment, timestamps) that travel with it on the wire.
type Archive struct {
	pool    *Pool
	rootUID UID

	walkPool *Pool

	name, comment             string
	timeCreated, timeModified int64
	modified                  bool

	wireMinorVersion int
}

const wireMinorVersion = 0

// New creates an empty archive ready to Serialize a live object graph
// into.
func New() *Archive {
	now := time.Now().Unix()
	return &Archive{
		pool:         newPool(),
		timeCreated:  now,
		timeModified: now,
	}
}

// NewFromBytes decodes data and returns the resulting archive, ready for
// Deserialize against a live destination graph.
func NewFromBytes(data []byte) (*Archive, error) {
	ar := &Archive{pool: newPool()}
	if err := ar.Decode(data); err != nil {
		return nil, err
	}
	return ar, nil
}

// Serialize walks root and every member it registers via Member, filling
// the archive's object pool from the live graph.
func (ar *Archive) Serialize(root Serializable) error {
	pool, obj := ar.walk(root)
	ar.pool = pool
	ar.rootUID = obj.UID()
	ar.touch()
	return nil
}

// Deserialize walks root the same way Serialize does, to build a fresh
// destination pool describing the live graph's current shape, then runs
// the synchronizer to copy the previously decoded source graph into it.
// Decode must have been called first.
func (ar *Archive) Deserialize(root Serializable) error {
	if ar.pool == nil || !ar.rootUID.Valid() {
		return errf(ErrSemantic, nil, "Deserialize called before Decode")
	}
	srcPool, srcRootUID := ar.pool, ar.rootUID
	srcObj, ok := srcPool.Lookup(srcRootUID)
	if !ok || !srcObj.Valid() {
		return errf(ErrSemantic, nil, "decoded archive has no root object")
	}

	dstPool, dstObj := ar.walk(root)

	sy := &syncer{dst: dstPool, src: srcPool}
	if err := sy.syncObject(dstObj, srcObj); err != nil {
		return err
	}

	ar.pool = dstPool
	ar.rootUID = dstObj.UID()
	return nil
}

// RawBytes encodes the archive's current pool and metadata into the
// Srx1v wire format.
func (ar *Archive) RawBytes() ([]byte, error) {
	return encodeArchive(ar)
}

// RootObject returns the archive's root Object, or nil if the archive is
// empty.
func (ar *Archive) RootObject() *Object {
	if ar.pool == nil {
		return nil
	}
	obj, ok := ar.pool.Lookup(ar.rootUID)
	if !ok {
		return nil
	}
	return obj
}

// ObjectByUID looks up any object in the archive's pool by its identity.
func (ar *Archive) ObjectByUID(uid UID) *Object {
	if ar.pool == nil {
		return nil
	}
	obj, _ := ar.pool.Lookup(uid)
	return obj
}

func (ar *Archive) Name() string    { return ar.name }
func (ar *Archive) Comment() string { return ar.comment }

func (ar *Archive) SetName(name string) {
	ar.name = name
	ar.touch()
}

func (ar *Archive) SetComment(comment string) {
	ar.comment = comment
	ar.touch()
}

func (ar *Archive) TimestampCreated() int64  { return ar.timeCreated }
func (ar *Archive) TimestampModified() int64 { return ar.timeModified }

func (ar *Archive) DateTimeCreated(base TimeBase) (time.Time, error) {
	if base != TimeBaseUnix {
		return time.Time{}, errf(ErrSemantic, nil, "unsupported time base %d", base)
	}
	return time.Unix(ar.timeCreated, 0).UTC(), nil
}

func (ar *Archive) DateTimeModified(base TimeBase) (time.Time, error) {
	if base != TimeBaseUnix {
		return time.Time{}, errf(ErrSemantic, nil, "unsupported time base %d", base)
	}
	return time.Unix(ar.timeModified, 0).UTC(), nil
}

// RawDataFormat returns the magic string identifying this wire format.
func (ar *Archive) RawDataFormat() string {
	return magic
}

// Clear discards the archive's pool and metadata, returning it to the
// state New() produces.
func (ar *Archive) Clear() {
	now := time.Now().Unix()
	ar.pool = newPool()
	ar.rootUID = NoUID
	ar.name = ""
	ar.comment = ""
	ar.timeCreated = now
	ar.timeModified = now
	ar.modified = false
}

// IsModified reports whether the archive has been written to (via
// Serialize, Remove, a mutator, or a metadata setter) since it was
// created or last decoded. Deserialize does not set it.
func (ar *Archive) IsModified() bool {
	return ar.modified
}

func (ar *Archive) touch() {
	ar.timeModified = time.Now().Unix()
	ar.modified = true
}

// Remove erases uid from the pool, and then orphan-collects: any member
// descriptor anywhere in the pool that pointed at uid is dropped too, so
// the pool never carries a dangling reference. This implements the
// "remove should traverse from root and remove all members associated
// with this object" behavior the original format's header documents but
// never defines an implementation for.
func (ar *Archive) Remove(uid UID) {
	if ar.pool == nil {
		return
	}
	ar.pool.Erase(uid)
	for _, obj := range ar.pool.objects {
		filtered := obj.Members[:0]
		for _, m := range obj.Members {
			if m.UID != uid {
				filtered = append(filtered, m)
			}
		}
		obj.Members = filtered
	}
	ar.touch()
}

// RemoveMember removes the named member from parent and erases the
// member's own object from the pool, exactly as Remove does for its UID.
// Objects reachable only through that member (a pointee, or a nested
// struct's own members) are not removed and stay in the pool.
func (ar *Archive) RemoveMember(parent *Object, name string) error {
	if parent == nil {
		return errf(ErrSemantic, nil, "RemoveMember: nil parent")
	}
	m := parent.MemberNamed(name)
	if !m.Valid() {
		return errf(ErrSemantic, nil, "RemoveMember: no member named %q", name)
	}
	ar.Remove(m.UID)
	return nil
}

// walk resets the archive's transient walk pool, walks root through its
// Serialize method, and returns the freshly populated pool together with
// root's own Object.
func (ar *Archive) walk(root Serializable) (*Pool, *Object) {
	pool := newPool()
	ar.walkPool = pool
	defer func() { ar.walkPool = nil }()

	rv := reflect.ValueOf(root)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		panic(fmt.Errorf("srx: Serialize/Deserialize: root must be a non-nil pointer, got %T", root))
	}
	t := rv.Type().Elem()
	uid := UID{Handle: rv.Pointer(), Width: int(t.Size())}
	dtype := describeType(t, false)
	obj, _ := registerAt(pool, uid, UIDChain{uid}, dtype)
	applyVersion(obj, root)
	root.Serialize(ar)
	return pool, obj
}

// Member registers one field of parent with the archive: parent is a
// pointer to the enclosing struct currently being walked, memberAddr is
// the address of the field, and name is the name under which schema
// matching will look it up again. It is the Go analogue of the original
// format's SRLZ(member) macro.
func (ar *Archive) Member(parent any, memberAddr any, name string) {
	if ar.walkPool == nil {
		panic("srx: Member called outside of a Serialize/Deserialize walk")
	}

	parentVal := reflect.ValueOf(parent)
	if parentVal.Kind() != reflect.Ptr || parentVal.IsNil() {
		panic(fmt.Errorf("srx: Member %q: parent must be a non-nil pointer, got %T", name, parent))
	}
	parentAddr := parentVal.Pointer()
	parentUID := UID{Handle: parentAddr, Width: int(parentVal.Type().Elem().Size())}
	parentObj := ar.walkPool.Get(parentUID)

	memberVal := reflect.ValueOf(memberAddr)
	if memberVal.Kind() != reflect.Ptr || memberVal.IsNil() {
		panic(fmt.Errorf("srx: Member %q: memberAddr must be a non-nil pointer, got %T", name, memberAddr))
	}
	fieldType := memberVal.Type().Elem()
	offset := memberVal.Pointer() - parentAddr

	chain, dtype := identify(memberVal, fieldType)
	parentObj.Members = append(parentObj.Members, Member{UID: chain.Head(), Offset: offset, Name: name, Type: dtype})

	switch {
	case dtype.IsPointer:
		ar.followPointer(chain, fieldType.Elem(), memberVal.Elem())
	case dtype.IsClass():
		obj, fresh := registerAt(ar.walkPool, chain.Head(), chain, dtype)
		if fresh {
			if s, ok := memberVal.Interface().(Serializable); ok {
				applyVersion(obj, s)
				s.Serialize(ar)
			}
		}
	default:
		obj, fresh := registerAt(ar.walkPool, chain.Head(), chain, dtype)
		if fresh {
			obj.RawBytes = readRawBytesAt(chain.Head())
		}
	}
}

func (ar *Archive) followPointer(chain UIDChain, elemType reflect.Type, ptrVal reflect.Value) {
	dtype := describeType(elemType, true)
	registerAt(ar.walkPool, chain.Head(), chain, dtype)

	pointeeUID := chain.Pointee()
	if !pointeeUID.Valid() {
		return
	}
	elemDtype := describeType(elemType, false)
	pObj, fresh := registerAt(ar.walkPool, pointeeUID, UIDChain{pointeeUID}, elemDtype)
	if !fresh {
		return
	}
	if elemDtype.IsClass() {
		if s, ok := ptrVal.Interface().(Serializable); ok {
			applyVersion(pObj, s)
			s.Serialize(ar)
		}
		return
	}
	pObj.RawBytes = readRawBytesAt(pointeeUID)
}

// registerAt files a genuinely new Object for uid if none is registered
// yet (or only an invalid placeholder is), reporting fresh=true so the
// caller knows to recurse into the datum's own Serialize method. If uid
// is already backed by a valid object — whether from an earlier call in
// this same walk, or a pointer cycle looping back onto it — the existing
// object is returned untouched and fresh=false, which is what makes
// registration idempotent and pointer cycles terminate.
func registerAt(pool *Pool, uid UID, chain UIDChain, dtype DataType) (obj *Object, fresh bool) {
	candidate := &Object{UIDs: chain, Type: dtype}
	if pool.InsertOrUpgrade(candidate) {
		return candidate, true
	}
	return pool.Get(uid), false
}

func applyVersion(obj *Object, s any) {
	if v, ok := s.(Versioned); ok {
		obj.Version, obj.MinCompatVer = v.ArchiveVersion()
	}
}

func identify(memberVal reflect.Value, fieldType reflect.Type) (UIDChain, DataType) {
	if fieldType.Kind() == reflect.Ptr {
		elemType := fieldType.Elem()
		slotUID := UID{Handle: memberVal.Pointer(), Width: int(unsafe.Sizeof(uintptr(0)))}
		ptrFieldVal := memberVal.Elem()
		pointeeUID := NoUID
		if !ptrFieldVal.IsNil() {
			pointeeUID = UID{Handle: ptrFieldVal.Pointer(), Width: int(elemType.Size())}
		}
		dtype := describeType(elemType, true)
		return UIDChain{slotUID, pointeeUID}, dtype
	}
	addr := memberVal.Pointer()
	dtype := describeType(fieldType, false)
	return UIDChain{{Handle: addr, Width: int(fieldType.Size())}}, dtype
}

func readRawBytesAt(uid UID) []byte {
	if !uid.Valid() {
		return nil
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(uid.Handle)), uid.Width)...)
}
