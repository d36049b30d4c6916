package srx

import "unsafe"

// syncer copies a decoded source graph into a live destination graph,
// matching the original format's Archive::Syncer member for member.
type syncer struct {
	dst *Pool
	src *Pool
}

func (sy *syncer) syncObject(dst, src *Object) error {
	if dst == nil || src == nil || !dst.Valid() || !src.Valid() {
		return nil
	}
	if !dst.IsVersionCompatibleTo(src) {
		return schemaErrf(dst.Type, src.Type, "", "version incompatible (dst v%d/min%d, src v%d/min%d)",
			dst.Version, dst.MinCompatVer, src.Version, src.MinCompatVer)
	}
	if !typesSyncCompatible(dst.Type, src.Type) {
		return schemaErrf(dst.Type, src.Type, "", "incompatible data structure type")
	}

	// Cycle guard: erase the destination object from the pool before
	// recursing into it, so a pointer cycle that loops back to the same
	// identity finds nothing and simply stops.
	sy.dst.Erase(dst.UID())

	switch {
	case dst.Type.IsPrimitive() && !dst.Type.IsPointer:
		return sy.syncPrimitive(dst, src)
	case dst.Type.IsPointer:
		return sy.syncPointer(dst, src)
	default:
		return sy.syncMembers(dst, src)
	}
}

// typesSyncCompatible is the object-level "dst.type == src.type" gate from
// the matching ladder's entry point. For classes it deliberately ignores
// Width: adding or removing a member is exactly what schema evolution
// changes the enclosing struct's byte size, so width can't be part of
// "same class, different version" or every such change would be rejected
// here before the member ladder (M1..M4) ever gets a chance to tolerate
// it. Pointers to structs are class-kind and take the same rule.
// Primitives, enums and pointers to them still require full structural
// equality, matching the same-named-retyped-member rejection the member
// ladder's M1 step relies on.
func typesSyncCompatible(dst, src DataType) bool {
	if dst.IsClass() && src.IsClass() {
		return dst.CustomTag == src.CustomTag && dst.IsPointer == src.IsPointer
	}
	return dst == src
}

func (sy *syncer) syncPrimitive(dst, src *Object) error {
	if len(src.RawBytes) != dst.Type.Width {
		return schemaErrf(dst.Type, src.Type, "", "source raw data size %d does not match destination type width %d",
			len(src.RawBytes), dst.Type.Width)
	}
	uid := dst.UID()
	if !uid.Valid() {
		return nil
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(uid.Handle)), dst.Type.Width)
	copy(buf, src.RawBytes)
	return nil
}

func (sy *syncer) syncPointer(dst, src *Object) error {
	dstPointee, dstOK := sy.dst.Lookup(dst.UIDs.Pointee())
	srcPointee, srcOK := sy.src.Lookup(src.UIDs.Pointee())
	if !dstOK || !srcOK {
		return nil
	}
	return sy.syncObject(dstPointee, srcPointee)
}

func (sy *syncer) syncMembers(dst, src *Object) error {
	for _, srcMember := range src.Members {
		dstMember, err := sy.matchMember(dst, src, srcMember)
		if err != nil {
			return err
		}
		if !dstMember.Valid() {
			return schemaErrf(dst.Type, src.Type, srcMember.Name, "expected member missing in destination object")
		}
		dstObj, dstOK := sy.dst.Lookup(dstMember.UID)
		srcObj, srcOK := sy.src.Lookup(srcMember.UID)
		if !dstOK || !srcOK {
			continue
		}
		if err := sy.syncObject(dstObj, srcObj); err != nil {
			return err
		}
	}
	return nil
}

// matchMember runs the M1..M4 schema-tolerance ladder to find the
// destination member that corresponds to srcMember.
func (sy *syncer) matchMember(dst, src *Object, srcMember Member) (Member, error) {
	// M1: same name, and the type must also match — no fallback to the
	// other rungs if a same-named member has a different type, since
	// that is a genuine incompatible rename-and-retype, not tolerance.
	if m := dst.MemberNamed(srcMember.Name); m.Valid() {
		if m.Type == srcMember.Type {
			return m, nil
		}
		return Member{}, nil
	}

	candidates := dst.MembersOfType(srcMember.Type)
	switch len(candidates) {
	case 0:
		return Member{}, nil
	case 1:
		// M2: exactly one destination member shares the type.
		return candidates[0], nil
	}

	// M3: among same-typed candidates, match by identical byte offset.
	for _, c := range candidates {
		if c.Offset == srcMember.Offset {
			return c, nil
		}
	}

	// M4: match by declaration-order sequence index.
	srcSeq := src.SequenceIndexOf(srcMember)
	for _, c := range candidates {
		if dst.SequenceIndexOf(c) == srcSeq {
			return c, nil
		}
	}

	return Member{}, nil
}
