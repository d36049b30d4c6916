package srx

// Member describes one registered field of a class-kind Object: its own
// identity (so it can be looked up as an Object in its own right), its
// byte offset from the enclosing object's base address, its declared
// name, and its type.
type Member struct {
	UID    UID
	Offset uintptr
	Name   string
	Type   DataType
}

func (m Member) Valid() bool {
	return m.Name != ""
}
