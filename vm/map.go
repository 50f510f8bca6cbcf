package vm

import "unsafe"

// ObjMap is a hash map from value-type keys to values.
//
// Open addressing with linear probing. An entry whose key is undefined is
// unused: its value is false if the entry was never used, true if it is a
// tombstone left by a removal. Probing continues past tombstones so that
// entries displaced by a removed key remain reachable.
type ObjMap struct {
	Obj
	count   int
	entries []mapEntry
}

type mapEntry struct {
	key   Value
	value Value
}

const (
	// mapLoadPercent is the load factor, in percent, above which the entry
	// array grows.
	mapLoadPercent = 75

	// minMapCapacity is the initial entry array size.
	minMapCapacity = 16

	// mapGrowFactor scales the entry array when the load factor is hit.
	mapGrowFactor = 2
)

// NewMap creates an empty map.
func (vm *VM) NewMap() *ObjMap {
	m := &ObjMap{}
	vm.appendObj(&m.Obj, ObjTypeMap, vm.MapClass, uint64(unsafe.Sizeof(*m)))
	return m
}

// Count returns the number of live entries.
func (m *ObjMap) Count() int {
	return m.count
}

// Capacity returns the size of the entry array, including unused entries.
func (m *ObjMap) Capacity() int {
	return len(m.entries)
}

// ---------------------------------------------------------------------------
// Hashing
// ---------------------------------------------------------------------------

// hashBits mixes a 64-bit pattern down to a 32-bit hash.
func hashBits(bits uint64) uint32 {
	bits = ^bits + (bits << 18)
	bits = bits ^ (bits >> 31)
	bits = bits * 21
	bits = bits ^ (bits >> 11)
	bits = bits + (bits << 6)
	bits = bits ^ (bits >> 22)
	return uint32(bits & 0x3fffffff)
}

// hashValue computes the hash for a key. Only value types hash: numbers,
// bools, null, strings, ranges, and classes.
func hashValue(v Value) uint32 {
	if v.IsObj() {
		obj := v.Obj()
		switch obj.Type {
		case ObjTypeString:
			return AsString(v).hash
		case ObjTypeClass:
			// Classes are hashed by name so the hash survives method
			// table mutation.
			return AsClass(v).Name.hash
		case ObjTypeRange:
			r := AsRange(v)
			return hashBits(uint64(NumVal(r.From))) ^ hashBits(uint64(NumVal(r.To)))
		default:
			panic("hashValue: only value types can be hashed")
		}
	}
	return hashBits(uint64(v))
}

// isValueType returns true for values usable as map keys.
func isValueType(v Value) bool {
	if !v.IsObj() {
		return !v.IsUndefined()
	}
	switch v.Obj().Type {
	case ObjTypeString, ObjTypeRange, ObjTypeClass:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Lookup and mutation
// ---------------------------------------------------------------------------

// findEntry locates the entry for key, or the entry where it would be
// inserted. The second result reports whether the key is present.
func (m *ObjMap) findEntry(key Value) (*mapEntry, bool) {
	if len(m.entries) == 0 {
		return nil, false
	}

	startIndex := int(hashValue(key)) % len(m.entries)
	index := startIndex
	var tombstone *mapEntry

	for {
		entry := &m.entries[index]
		if entry.key.IsUndefined() {
			if entry.value == False {
				// A never-used entry ends the probe chain.
				if tombstone != nil {
					return tombstone, false
				}
				return entry, false
			}
			// A tombstone: keep probing, but remember it for insertion.
			if tombstone == nil {
				tombstone = entry
			}
		} else if ValuesEqual(entry.key, key) {
			return entry, true
		}

		index = (index + 1) % len(m.entries)
		if index == startIndex {
			break
		}
	}

	// The array is full of tombstones.
	return tombstone, false
}

// resize rebuilds the entry array at the given capacity.
func (m *ObjMap) resize(capacity int) {
	old := m.entries
	m.entries = make([]mapEntry, capacity)
	for i := range m.entries {
		m.entries[i] = mapEntry{key: Undefined, value: False}
	}
	m.count = 0
	for i := range old {
		if !old[i].key.IsUndefined() {
			m.insert(old[i].key, old[i].value)
		}
	}
}

// insert adds an entry without checking the load factor.
func (m *ObjMap) insert(key, value Value) {
	entry, found := m.findEntry(key)
	if !found {
		m.count++
	}
	entry.key = key
	entry.value = value
}

// Get returns the value for key, or the undefined value if absent.
func (m *ObjMap) Get(key Value) Value {
	entry, found := m.findEntry(key)
	if !found {
		return Undefined
	}
	return entry.value
}

// Set stores value under key, growing the entry array as needed.
func (m *ObjMap) Set(key, value Value) {
	if (m.count+1)*100 > len(m.entries)*mapLoadPercent {
		capacity := len(m.entries) * mapGrowFactor
		if capacity < minMapCapacity {
			capacity = minMapCapacity
		}
		m.resize(capacity)
	}
	m.insert(key, value)
}

// Contains returns true if key is present.
func (m *ObjMap) Contains(key Value) bool {
	_, found := m.findEntry(key)
	return found
}

// Remove deletes key, returning the removed value or null if absent.
func (m *ObjMap) Remove(key Value) Value {
	entry, found := m.findEntry(key)
	if !found {
		return Null
	}

	removed := entry.value
	entry.key = Undefined
	entry.value = True // tombstone
	m.count--
	return removed
}

// Clear removes every entry.
func (m *ObjMap) Clear() {
	m.entries = nil
	m.count = 0
}

// ---------------------------------------------------------------------------
// Iteration
//
// The iterator is an index into the entry array. Advancing it walks to the
// next live entry; the key/value accessors read the entry at an index.
// ---------------------------------------------------------------------------

// ForEach calls fn for every live entry, in entry array order.
func (m *ObjMap) ForEach(fn func(key, value Value)) {
	for i := range m.entries {
		if !m.entries[i].key.IsUndefined() {
			fn(m.entries[i].key, m.entries[i].value)
		}
	}
}

// iterateEntries returns the index of the first live entry at or after
// index, or -1 when iteration is done.
func (m *ObjMap) iterateEntries(index int) int {
	for ; index < len(m.entries); index++ {
		if !m.entries[index].key.IsUndefined() {
			return index
		}
	}
	return -1
}

// entryKey returns the key of the entry at index.
func (m *ObjMap) entryKey(index int) Value {
	return m.entries[index].key
}

// entryValue returns the value of the entry at index.
func (m *ObjMap) entryValue(index int) Value {
	return m.entries[index].value
}
