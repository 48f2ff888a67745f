package extra

import (
	"strconv"
	"time"
)

// Partition is a nested-document path of the search index. The names are contractual.
type Partition string

// Index partitions, one per scalar type.
const (
	PartitionStr   Partition = "extras_str"
	PartitionInt   Partition = "extras_int"
	PartitionFloat Partition = "extras_float"
	PartitionBool  Partition = "extras_bool"
	PartitionDate  Partition = "extras_date"
)

// Partitions lists every partition in a stable order.
var Partitions = []Partition{PartitionStr, PartitionInt, PartitionFloat, PartitionBool, PartitionDate}

// HasUnit reports whether documents of p carry a unit field.
func (p Partition) HasUnit() bool { return p == PartitionInt || p == PartitionFloat }

// Field returns the fully qualified name of a field inside p, e.g. "extras_str.key".
func (p Partition) Field(name string) string { return string(p) + "." + name }

// PartitionOf returns the partition storing scalar extras of type t.
func PartitionOf(t Type) (Partition, bool) {
	switch t {
	case Str:
		return PartitionStr, true
	case Int:
		return PartitionInt, true
	case Float:
		return PartitionFloat, true
	case Bool:
		return PartitionBool, true
	case Date:
		return PartitionDate, true
	}
	return "", false
}

// Entry is one flattened scalar extra as stored in a partition.
type Entry struct {
	Key   string  `json:"key"`
	Value any     `json:"value"`
	Unit  *string `json:"unit,omitempty"`
}

// Flatten walks nested extras and groups every scalar leaf by partition.
// Leaf keys become dotted paths of their ancestors' keys; list members use
// their 1-based position. Extras are expected to be normalized.
func Flatten(extras []Extra) map[Partition][]Entry {
	out := make(map[Partition][]Entry, len(Partitions))
	for _, p := range Partitions {
		out[p] = []Entry{}
	}
	for _, e := range extras {
		flatten(e, e.Key, out)
	}
	return out
}

func flatten(e Extra, key string, out map[Partition][]Entry) {
	if e.Type.IsNested() {
		for i, child := range e.Children {
			childKey := child.Key
			if e.Type == List {
				childKey = strconv.Itoa(i + 1)
			}
			flatten(child, key+"."+childKey, out)
		}
		return
	}

	p, ok := PartitionOf(e.Type)
	if !ok {
		return
	}
	value := e.Value
	if t, isTime := value.(time.Time); isTime {
		value = FormatDate(t)
	}
	entry := Entry{Key: key, Value: value}
	if p.HasUnit() {
		entry.Unit = e.Unit
	}
	out[p] = append(out[p], entry)
}
