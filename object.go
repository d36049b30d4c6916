package srx

// Object is the reflected description of one datum in the graph: a
// primitive scalar, a pointer slot, or a class/struct with its own
// members. Objects are filed in a Pool keyed by their identity chain's
// head UID.
type Object struct {
	UIDs         UIDChain
	Type         DataType
	Version      uint32
	MinCompatVer uint32
	RawBytes     []byte
	Members      []Member

	// FromWire is true for objects populated by decoding wire bytes: their
	// UID.Handle is a foreign token from whatever process encoded them and
	// must never be dereferenced. It is false for objects built by walking
	// a live Go graph via Archive.Member, whose UID.Handle is a real local
	// address safe to write through.
	FromWire bool
}

func (o *Object) UID() UID {
	return o.UIDs.Head()
}

// Valid reports whether o is a genuine reflected object rather than a
// placeholder inserted by Pool.Get. Identity alone isn't enough: a
// placeholder already carries a valid UID (that's what it's keyed by) but
// a zero-value Type, so checking Type too is what lets registerAt tell
// "already fully registered" apart from "just created this call".
func (o *Object) Valid() bool {
	return o != nil && o.UIDs.Head().Valid() && o.Type.Valid()
}

// IsVersionCompatibleTo implements the asymmetric version gate: equal
// versions are always compatible; otherwise whichever side is older must
// meet the newer side's minimum-compatible-version requirement.
func (o *Object) IsVersionCompatibleTo(other *Object) bool {
	if o.Version == other.Version {
		return true
	}
	if o.Version > other.Version {
		return o.MinCompatVer <= other.Version
	}
	return other.MinCompatVer <= o.Version
}

// MemberNamed returns the member with the given name, or the zero Member
// if none matches (M1's first step).
func (o *Object) MemberNamed(name string) Member {
	for _, m := range o.Members {
		if m.Name == name {
			return m
		}
	}
	return Member{}
}

// MembersOfType returns every member whose type equals t, in declaration
// order (feeds M2/M3/M4).
func (o *Object) MembersOfType(t DataType) []Member {
	var out []Member
	for _, m := range o.Members {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// SequenceIndexOf returns the declaration-order index of m within o's
// members, or -1 if m is not one of them (feeds M4).
func (o *Object) SequenceIndexOf(m Member) int {
	for i, mm := range o.Members {
		if mm.Name == m.Name && mm.Offset == m.Offset && mm.Type == m.Type {
			return i
		}
	}
	return -1
}
