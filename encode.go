package srx

// magic is the literal, unframed prefix of every Srx1v archive: no
// length prefix precedes it, unlike every other value in the format.
const magic = "Srx1v"

// encodeArchive renders ar's current pool and metadata into the Srx1v
// wire format: the magic literal followed by exactly one length-prefixed
// root blob.
func encodeArchive(ar *Archive) ([]byte, error) {
	var root bytesBuilder
	root.appendInt(int64(wireMinorVersion))
	encodeUID(&root, ar.rootUID)
	encodePool(&root, ar.pool)
	root.appendString(ar.name)
	root.appendString(ar.comment)
	root.appendInt(ar.timeCreated)
	root.appendInt(ar.timeModified)

	var out bytesBuilder
	out.Buf = append(out.Buf, magic...)
	out.appendBlob(root.Buf)
	return out.Buf, nil
}

func encodeUID(bb *bytesBuilder, u UID) {
	var inner bytesBuilder
	inner.appendUint(uint64(u.Handle))
	inner.appendInt(int64(u.Width))
	bb.appendBlob(inner.Buf)
}

func encodeUIDChain(bb *bytesBuilder, c UIDChain) {
	var inner bytesBuilder
	for _, u := range c {
		encodeUID(&inner, u)
	}
	bb.appendBlob(inner.Buf)
}

func encodeDataType(bb *bytesBuilder, t DataType) {
	var inner bytesBuilder
	inner.appendString(string(t.BaseKind))
	inner.appendString(t.CustomTag)
	inner.appendInt(int64(t.Width))
	inner.appendBool(t.IsPointer)
	bb.appendBlob(inner.Buf)
}

func encodeMember(bb *bytesBuilder, m Member) {
	var inner bytesBuilder
	encodeUID(&inner, m.UID)
	inner.appendInt(int64(m.Offset))
	inner.appendString(m.Name)
	encodeDataType(&inner, m.Type)
	bb.appendBlob(inner.Buf)
}

func encodeMembers(bb *bytesBuilder, members []Member) {
	var inner bytesBuilder
	for _, m := range members {
		encodeMember(&inner, m)
	}
	bb.appendBlob(inner.Buf)
}

func encodeObject(bb *bytesBuilder, obj *Object) {
	var inner bytesBuilder
	encodeDataType(&inner, obj.Type)
	inner.appendUint(uint64(obj.Version))
	inner.appendUint(uint64(obj.MinCompatVer))
	encodeUIDChain(&inner, obj.UIDs)
	encodeMembers(&inner, obj.Members)
	inner.appendBlob(renderPrimitiveWireValue(obj.Type, obj.RawBytes))
	bb.appendBlob(inner.Buf)
}

func encodePool(bb *bytesBuilder, pool *Pool) {
	var inner bytesBuilder
	if pool != nil {
		for _, obj := range pool.objects {
			encodeObject(&inner, obj)
		}
	}
	bb.appendBlob(inner.Buf)
}
