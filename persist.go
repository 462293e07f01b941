// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"encoding/binary"
	"io"
	"sort"
)

// magic and formatVersion identify a save stream (§6.3): a reader that sees
// a different magic, or a version it does not understand, must refuse to
// load rather than guess at the layout.
const (
	magic         uint32 = 0x5242_4444 // "RBDD"
	formatVersion uint32 = 1
)

// Save writes a self-describing byte stream recording every committed VHL
// record in b's unique table: a header (magic, format version, varnum,
// number of VID groups), then for each VID present, in depth order
// (shallowest first), the packed VID, the count of its records, and each
// record's (hi, lo) pair in canonical 64-bit NID form — the VID itself is
// not repeated per record since every record in a group shares it.
func (b *Base) Save(w io.Writer) error {
	var vids []VID
	b.unique.Rows(func(v VID) { vids = append(vids, v) })
	sort.Slice(vids, func(i, j int) bool { return CmpDepth(vids[i], vids[j]) == Above })

	if err := writeUint32(w, magic); err != nil {
		return err
	}
	if err := writeUint32(w, formatVersion); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(b.varnum)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(vids))); err != nil {
		return err
	}
	for _, v := range vids {
		records := b.unique.RecordsOf(v)
		if err := writeUint32(w, uint32(v.pack())); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(records))); err != nil {
			return err
		}
		for _, rec := range records {
			if err := writeUint64(w, uint64(rec.Hi)); err != nil {
				return err
			}
			if err := writeUint64(w, uint64(rec.Lo)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load rebuilds a Base from a stream written by Save, re-inserting every
// record in the order it was written so that GetOrMake reproduces the same
// IDX for each (v, hi, lo): the unique table's rows are append-only, so
// replaying a group from an empty row in its original order always yields
// identical indices.
func Load(r io.Reader, options ...func(*configs)) (*Base, error) {
	gotMagic, err := readUint32(r)
	if err != nil {
		return nil, wrapError(MalformedInput, err, "load: reading magic")
	}
	if gotMagic != magic {
		return nil, newError(MalformedInput, "load: bad magic %#x", gotMagic)
	}
	version, err := readUint32(r)
	if err != nil {
		return nil, wrapError(MalformedInput, err, "load: reading version")
	}
	if version != formatVersion {
		return nil, newError(MalformedInput, "load: unsupported format version %d", version)
	}
	varnum, err := readUint32(r)
	if err != nil {
		return nil, wrapError(MalformedInput, err, "load: reading varnum")
	}
	base, err := New(int(varnum), options...)
	if err != nil {
		return nil, err
	}

	numVids, err := readUint32(r)
	if err != nil {
		return nil, wrapError(MalformedInput, err, "load: reading VID count")
	}
	for i := uint32(0); i < numVids; i++ {
		packed, err := readUint32(r)
		if err != nil {
			return nil, wrapError(MalformedInput, err, "load: reading VID")
		}
		v := unpackVID(uint64(packed))
		count, err := readUint32(r)
		if err != nil {
			return nil, wrapError(MalformedInput, err, "load: reading record count")
		}
		for j := uint32(0); j < count; j++ {
			hi, err := readUint64(r)
			if err != nil {
				return nil, wrapError(MalformedInput, err, "load: reading hi")
			}
			lo, err := readUint64(r)
			if err != nil {
				return nil, wrapError(MalformedInput, err, "load: reading lo")
			}
			if _, err := base.unique.GetOrMake(v, NID(hi), NID(lo)); err != nil {
				return nil, err
			}
		}
	}
	return base, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
