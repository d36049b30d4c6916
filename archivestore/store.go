// Package archivestore persists named srx archives in a bbolt database.
// It is not part of the core reflective serialization engine: it is a
// small application of it, the same way edb.DB sits on top of a bbolt
// handle and a schema rather than reimplementing bbolt itself.
//
// Every record keeps the archive's already-encoded Srx1v bytes untouched
// and opaque, alongside a copy of its Name/Comment/timestamps so a caller
// can list archives without decoding each one's body.
package archivestore

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/srxfmt/srx"
)

var bucketName = []byte("archives")

// Options configures Open, mirroring the teacher's db.Options shape.
type Options struct {
	Logf      func(format string, args ...any)
	IsTesting bool
	MmapSize  int
}

// Store is a single-owner handle onto one bbolt file holding named
// archive records.
type Store struct {
	bdb  *bbolt.DB
	logf func(format string, args ...any)
}

// Open opens (creating if necessary) the bbolt file at path and ensures
// the archives bucket exists.
func Open(path string, opt Options) (*Store, error) {
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("archivestore: open %s: %w", path, err)
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("archivestore: open %s: %w", path, err)
	}

	st := &Store{bdb: bdb, logf: opt.Logf}
	st.logDebug("open", "path", path)
	return st, nil
}

func (st *Store) Close() error {
	return st.bdb.Close()
}

func (st *Store) Bolt() *bbolt.DB {
	return st.bdb
}

func (st *Store) logDebug(msg string, kv ...any) {
	if st.logf == nil {
		return
	}
	st.logf("archivestore: %s %v", msg, kv)
}

// Meta is a record's listable metadata, without decoding its archive body.
type Meta struct {
	Key        string
	Name       string
	Comment    string
	CreatedAt  int64
	ModifiedAt int64
}

// Put encodes ar's current state and writes it under key, overwriting any
// existing record. ar.RawBytes is called eagerly, so Put reflects ar's
// state at the moment of the call, not a live reference to it.
func (st *Store) Put(key string, ar *srx.Archive) error {
	data, err := ar.RawBytes()
	if err != nil {
		return fmt.Errorf("archivestore: put %q: encoding archive: %w", key, err)
	}
	rec := record{
		Name:       ar.Name(),
		Comment:    ar.Comment(),
		CreatedAt:  ar.TimestampCreated(),
		ModifiedAt: ar.TimestampModified(),
		Data:       data,
	}
	buf, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("archivestore: put %q: %w", key, err)
	}
	err = st.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Put([]byte(key), buf)
	})
	if err != nil {
		return fmt.Errorf("archivestore: put %q: %w", key, err)
	}
	st.logDebug("put", "key", key, "bytes", len(buf))
	return nil
}

// Get decodes the record stored under key into a ready-to-use *srx.Archive,
// positioned for a Deserialize call against a live destination graph.
func (st *Store) Get(key string) (*srx.Archive, error) {
	rec, err := st.getRecord(key)
	if err != nil {
		return nil, fmt.Errorf("archivestore: get %q: %w", key, err)
	}
	ar, err := srx.NewFromBytes(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("archivestore: get %q: decoding archive: %w", key, err)
	}
	return ar, nil
}

// Meta returns key's metadata without decoding its archive body.
func (st *Store) Meta(key string) (Meta, error) {
	rec, err := st.getRecord(key)
	if err != nil {
		return Meta{}, fmt.Errorf("archivestore: meta %q: %w", key, err)
	}
	return Meta{
		Key:        key,
		Name:       rec.Name,
		Comment:    rec.Comment,
		CreatedAt:  rec.CreatedAt,
		ModifiedAt: rec.ModifiedAt,
	}, nil
}

// getRecord returns ErrNotFound (unwrapped) when key is absent, so callers
// can attach their own operation name to the message.
func (st *Store) getRecord(key string) (record, error) {
	var rec record
	var found bool
	err := st.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		r, err := decodeRecord(raw)
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		return record{}, err
	}
	if !found {
		return record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes key's record, if any. Deleting an absent key is not an
// error, matching bbolt's own Bucket.Delete semantics.
func (st *Store) Delete(key string) error {
	err := st.bdb.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("archivestore: delete %q: %w", key, err)
	}
	st.logDebug("delete", "key", key)
	return nil
}

// List returns every record's metadata, in key order.
func (st *Store) List() ([]Meta, error) {
	var out []Meta
	err := st.bdb.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			rec, err := decodeRecord(v)
			if err != nil {
				return fmt.Errorf("key %q: %w", string(k), err)
			}
			out = append(out, Meta{
				Key:        string(k),
				Name:       rec.Name,
				Comment:    rec.Comment,
				CreatedAt:  rec.CreatedAt,
				ModifiedAt: rec.ModifiedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archivestore: list: %w", err)
	}
	return out, nil
}
