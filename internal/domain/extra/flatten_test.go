package extra

import (
	"testing"
	"time"
)

func TestFlatten_NestedPaths(t *testing.T) {
	extras := []Extra{
		{Type: Str, Key: "material", Value: "steel"},
		{Type: Dict, Key: "sample", Children: []Extra{
			{Type: Float, Key: "length", Value: 1.5, Unit: strPtr("cm")},
			{Type: List, Key: "points", Children: []Extra{
				{Type: Int, Value: int64(1)},
				{Type: Int, Value: int64(2), Unit: strPtr("mm")},
			}},
		}},
		{Type: Bool, Key: "ok", Value: true},
		{Type: Date, Key: "when", Value: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Type: Str, Key: "empty"},
	}

	parts := Flatten(extras)

	if len(parts) != len(Partitions) {
		t.Fatalf("expected all partitions, got %d", len(parts))
	}

	str := parts[PartitionStr]
	if len(str) != 2 || str[0].Key != "material" || str[1].Key != "empty" || str[1].Value != nil {
		t.Errorf("str partition = %+v", str)
	}

	ints := parts[PartitionInt]
	if len(ints) != 2 {
		t.Fatalf("int partition = %+v", ints)
	}
	if ints[0].Key != "sample.points.1" || ints[1].Key != "sample.points.2" {
		t.Errorf("list keys = %q, %q", ints[0].Key, ints[1].Key)
	}
	if ints[0].Unit != nil || ints[1].Unit == nil || *ints[1].Unit != "mm" {
		t.Errorf("units = %v, %v", ints[0].Unit, ints[1].Unit)
	}

	floats := parts[PartitionFloat]
	if len(floats) != 1 || floats[0].Key != "sample.length" || *floats[0].Unit != "cm" {
		t.Errorf("float partition = %+v", floats)
	}

	dates := parts[PartitionDate]
	if len(dates) != 1 || dates[0].Value != "2020-01-01T00:00:00+00:00" {
		t.Errorf("date partition = %+v", dates)
	}

	if len(parts[PartitionBool]) != 1 {
		t.Errorf("bool partition = %+v", parts[PartitionBool])
	}
}

func TestPartitionOf(t *testing.T) {
	for _, typ := range []Type{Dict, List, "unknown"} {
		if _, ok := PartitionOf(typ); ok {
			t.Errorf("PartitionOf(%q) should not resolve", typ)
		}
	}
	p, ok := PartitionOf(Float)
	if !ok || p != PartitionFloat || !p.HasUnit() {
		t.Errorf("PartitionOf(float) = %q", p)
	}
	if PartitionBool.HasUnit() {
		t.Error("bool partition has no unit")
	}
	if got := PartitionStr.Field("value.keyword"); got != "extras_str.value.keyword" {
		t.Errorf("Field = %q", got)
	}
}
