package srx

// Decode parses data as an Srx1v archive, replacing ar's pool and
// metadata with what it finds. Every Object it produces has FromWire
// set, since its identity handles are foreign tokens copied from
// whatever process encoded the archive.
func (ar *Archive) Decode(data []byte) error {
	if len(data) < len(magic) || string(data[:len(magic)]) != magic {
		return decodeErrf(data, 0, nil, "magic start missing")
	}

	d := makeByteDecoder(data[len(magic):])
	root, err := d.decodeBlob()
	if err != nil {
		return err
	}

	rd := subDecoder(data, root)

	if _, err := rd.decodeInt(); err != nil { // minor version, currently unused on read
		return err
	}
	rootUID, err := decodeUID(&rd)
	if err != nil {
		return err
	}
	if !rootUID.Valid() {
		return decodeErrf(data, rd.Off(), nil, "no root object")
	}
	pool, err := decodePool(&rd)
	if err != nil {
		return err
	}
	name, err := rd.decodeString()
	if err != nil {
		return err
	}
	comment, err := rd.decodeString()
	if err != nil {
		return err
	}
	created, err := rd.decodeInt()
	if err != nil {
		return err
	}
	modified, err := rd.decodeInt()
	if err != nil {
		return err
	}

	if _, ok := pool.Lookup(rootUID); !ok {
		return decodeErrf(data, rd.Off(), nil, "declared root object missing from pool")
	}

	ar.pool = pool
	ar.rootUID = rootUID
	ar.name = name
	ar.comment = comment
	ar.timeCreated = created
	ar.timeModified = modified
	ar.modified = false
	return nil
}

func decodeUID(d *byteDecoder) (UID, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return UID{}, err
	}
	sd := subDecoder(d.Orig, blob)
	handle, err := sd.decodeUint()
	if err != nil {
		return UID{}, err
	}
	width, err := sd.decodeInt()
	if err != nil {
		return UID{}, err
	}
	return UID{Handle: uintptr(handle), Width: int(width)}, nil
}

func decodeUIDChain(d *byteDecoder) (UIDChain, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return nil, err
	}
	sd := subDecoder(d.Orig, blob)
	var chain UIDChain
	for sd.Len() > 0 {
		u, err := decodeUID(&sd)
		if err != nil {
			return nil, err
		}
		chain = append(chain, u)
	}
	return chain, nil
}

func decodeDataType(d *byteDecoder) (DataType, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return DataType{}, err
	}
	sd := subDecoder(d.Orig, blob)
	baseKind, err := sd.decodeString()
	if err != nil {
		return DataType{}, err
	}
	customTag, err := sd.decodeString()
	if err != nil {
		return DataType{}, err
	}
	width, err := sd.decodeInt()
	if err != nil {
		return DataType{}, err
	}
	isPointer, err := sd.decodeBool()
	if err != nil {
		return DataType{}, err
	}
	return DataType{BaseKind: BaseKind(baseKind), CustomTag: customTag, Width: int(width), IsPointer: isPointer}, nil
}

func decodeMember(d *byteDecoder) (Member, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return Member{}, err
	}
	sd := subDecoder(d.Orig, blob)
	uid, err := decodeUID(&sd)
	if err != nil {
		return Member{}, err
	}
	offset, err := sd.decodeInt()
	if err != nil {
		return Member{}, err
	}
	name, err := sd.decodeString()
	if err != nil {
		return Member{}, err
	}
	typ, err := decodeDataType(&sd)
	if err != nil {
		return Member{}, err
	}
	return Member{UID: uid, Offset: uintptr(offset), Name: name, Type: typ}, nil
}

func decodeMembers(d *byteDecoder) ([]Member, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return nil, err
	}
	sd := subDecoder(d.Orig, blob)
	var members []Member
	for sd.Len() > 0 {
		m, err := decodeMember(&sd)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func decodeObject(d *byteDecoder) (*Object, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return nil, err
	}
	sd := subDecoder(d.Orig, blob)

	typ, err := decodeDataType(&sd)
	if err != nil {
		return nil, err
	}
	version, err := sd.decodeUint()
	if err != nil {
		return nil, err
	}
	minVersion, err := sd.decodeUint()
	if err != nil {
		return nil, err
	}
	chain, err := decodeUIDChain(&sd)
	if err != nil {
		return nil, err
	}
	members, err := decodeMembers(&sd)
	if err != nil {
		return nil, err
	}
	raw, err := sd.decodeBlob()
	if err != nil {
		return nil, err
	}
	rawBytes, err := parsePrimitiveWireValue(typ, raw)
	if err != nil {
		return nil, decodeErrf(sd.Orig, sd.Off(), err, "malformed primitive value")
	}

	return &Object{
		UIDs:         chain,
		Type:         typ,
		Version:      uint32(version),
		MinCompatVer: uint32(minVersion),
		RawBytes:     rawBytes,
		Members:      members,
		FromWire:     true,
	}, nil
}

func decodePool(d *byteDecoder) (*Pool, error) {
	blob, err := d.decodeBlob()
	if err != nil {
		return nil, err
	}
	sd := subDecoder(d.Orig, blob)
	pool := newPool()
	for sd.Len() > 0 {
		obj, err := decodeObject(&sd)
		if err != nil {
			return nil, err
		}
		uid := obj.UIDs.Head()
		if uid.Valid() {
			pool.objects[uid] = obj
		}
	}
	return pool, nil
}
