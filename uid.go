package srx

// UID identifies one object inside an archive's object pool. Handle is an
// address-shaped token: while an archive is being built from a live Go
// graph, it is the real address of the datum it names; once decoded from
// the wire it is just an opaque number carried over from whatever process
// encoded it, and must never be dereferenced. Width is the byte size of
// the identified datum, used to validate writes back into live memory.
// A handle travels as an unsigned decimal and is converted back to
// uintptr on decode without clamping, so a handle from a sender with
// wider pointers than the receiver is truncated.
type UID struct {
	Handle uintptr
	Width  int
}

// NoUID is the sentinel identity used for a nil pointer member: it carries
// no handle and no width, and is never inserted into a Pool.
var NoUID = UID{}

// Valid reports whether u refers to an actual datum. It mirrors the
// original's UID::isValid(), which additionally rejected the all-ones
// "invalid pointer" bit pattern some allocators used as a poison value;
// Go never hands out that bit pattern for real addresses, so here a zero
// handle is the only invalid case worth checking, paired with a non-zero
// width.
func (u UID) Valid() bool {
	return u.Handle != 0 && u.Width > 0
}

// UIDChain is the one- or two-element identity of a member: length 1 for
// a plain value, length 2 for a first-degree pointer, where chain[0]
// identifies the pointer slot itself and chain[1] identifies the pointee
// (or equals NoUID if the pointer was nil).
type UIDChain []UID

// Head is the chain's own identity: the key under which its Object is
// filed in the Pool.
func (c UIDChain) Head() UID {
	if len(c) == 0 {
		return NoUID
	}
	return c[0]
}

// Pointee returns the second element of a two-element chain, or NoUID for
// a non-pointer chain.
func (c UIDChain) Pointee() UID {
	if len(c) < 2 {
		return NoUID
	}
	return c[1]
}
