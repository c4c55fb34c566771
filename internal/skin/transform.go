package skin

import (
	"sort"

	"github.com/zjrosen/skinstore/internal/tagtree"
)

// Keys of the persisted record shape:
//
//	<name>: { Skin: { Name, Data, CapeData, GeometryName, GeometryData } }
const (
	keySkin         = "Skin"
	keyName         = "Name"
	keyData         = "Data"
	keyCapeData     = "CapeData"
	keyGeometryName = "GeometryName"
	keyGeometryData = "GeometryData"
)

// Load converts a decoded root compound into records. Entries that do not
// have the full record shape are skipped so one bad entry cannot block the
// rest. Load does not touch any registry.
func Load(root *tagtree.Compound) map[string]Record {
	records := make(map[string]Record, root.Len())
	if root == nil {
		return records
	}
	root.Each(func(name string, v tagtree.Value) {
		if rec, ok := decodeRecord(v); ok {
			records[name] = rec
		}
	})
	return records
}

func decodeRecord(v tagtree.Value) (Record, bool) {
	entry, ok := v.(*tagtree.Compound)
	if !ok || entry == nil {
		return Record{}, false
	}
	skin, ok := entry.GetCompound(keySkin)
	if !ok {
		return Record{}, false
	}

	id, ok := skin.GetString(keyName)
	if !ok {
		return Record{}, false
	}
	data, ok := skin.GetBytes(keyData)
	if !ok {
		return Record{}, false
	}
	cape, ok := skin.GetBytes(keyCapeData)
	if !ok {
		return Record{}, false
	}
	geometryName, ok := skin.GetString(keyGeometryName)
	if !ok {
		return Record{}, false
	}
	geometryData, ok := skin.GetBytes(keyGeometryData)
	if !ok {
		return Record{}, false
	}

	return Record{
		ID:           id,
		ImageData:    cloneBytes(data),
		CapeData:     cloneBytes(cape),
		GeometryName: geometryName,
		GeometryData: cloneBytes(geometryData),
	}, true
}

// Save builds the root compound for records. Names are emitted in sorted
// order so saving the same map twice yields identical bytes.
func Save(records map[string]Record) *tagtree.Compound {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	root := tagtree.NewCompound()
	for _, name := range names {
		root.Set(name, encodeRecord(records[name]))
	}
	return root
}

func encodeRecord(r Record) *tagtree.Compound {
	return tagtree.NewCompound().Set(keySkin, tagtree.NewCompound().
		SetString(keyName, r.ID).
		SetBytes(keyData, cloneBytes(r.ImageData)).
		SetBytes(keyCapeData, cloneBytes(r.CapeData)).
		SetString(keyGeometryName, r.GeometryName).
		SetBytes(keyGeometryData, cloneBytes(r.GeometryData)))
}
