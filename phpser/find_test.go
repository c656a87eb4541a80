package phpser

import "testing"

func TestRecord_Find(t *testing.T) {
	rec := mustDecode(t, `a:4:{s:1:"a";i:1;s:1:"b";i:2;}`)

	v, ok := rec.Find(Str("b"))
	if !ok || !v.Equal(Int(2)) {
		t.Errorf(`Expected Find("b") -> 2, got %s (ok=%v)`, v, ok)
	}
	if _, ok := rec.Find(Str("z")); ok {
		t.Error(`Find("z") should report no match`)
	}
}

func TestRecord_Find_DescendsIntoNested(t *testing.T) {
	rec := mustDecode(t, `a:2:{s:5:"outer";a:2:{s:5:"inner";b:1;}}`)

	v, ok := rec.Find(Str("inner"))
	if !ok {
		t.Fatal(`Find("inner") should match inside the nested record`)
	}
	if b, err := v.AsBool(); err != nil || !b {
		t.Errorf("Expected true, got %s (%v)", v, err)
	}
}

func TestRecord_Find_MatchWinsOverDescent(t *testing.T) {
	// The key "k" names a nested record that itself contains "k". The
	// first match is the record value; its contents are not preferred.
	rec := mustDecode(t, `a:2:{s:1:"k";a:2:{s:1:"k";i:9;}}`)

	v, ok := rec.Find(Str("k"))
	if !ok {
		t.Fatal(`Find("k") should match`)
	}
	if v.Kind() != KindRecord {
		t.Fatalf("Expected the nested record, got %s", v)
	}
}

func TestRecord_Find_FalseValueIsStillFound(t *testing.T) {
	// A stored false must not read as "no match".
	rec := mustDecode(t, `a:2:{s:1:"k";b:0;}`)

	v, ok := rec.Find(Str("k"))
	if !ok {
		t.Fatal(`Find("k") should match a false value`)
	}
	if b, err := v.AsBool(); err != nil || b {
		t.Errorf("Expected false, got %s (%v)", v, err)
	}
}

func TestRecord_FindAll(t *testing.T) {
	rec := mustDecode(t, `a:4:{s:1:"k";i:1;s:1:"n";a:2:{s:1:"k";i:2;}}`)

	vals := rec.FindAll(Str("k"))
	if len(vals) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(vals))
	}
	if !vals[0].Equal(Int(1)) || !vals[1].Equal(Int(2)) {
		t.Errorf("Expected [1, 2] in discovery order, got %v", vals)
	}
}

func TestRecord_FindAll_DescendsPastMatches(t *testing.T) {
	rec := mustDecode(t, `a:2:{s:1:"k";a:2:{s:1:"k";i:9;}}`)

	vals := rec.FindAll(Str("k"))
	if len(vals) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(vals))
	}
	if vals[0].Kind() != KindRecord {
		t.Errorf("Expected the record first, got %s", vals[0])
	}
	if !vals[1].Equal(Int(9)) {
		t.Errorf("Expected 9 second, got %s", vals[1])
	}
}

func TestRecord_Find_AgreesWithFindAll(t *testing.T) {
	inputs := []string{
		`a:4:{s:1:"a";i:1;s:1:"b";i:2;}`,
		`a:2:{s:5:"outer";a:2:{s:5:"inner";b:1;}}`,
		`a:4:{s:1:"k";i:1;s:1:"n";a:2:{s:1:"k";i:2;}}`,
		`a:0:{}`,
	}
	keys := []Value{Str("a"), Str("inner"), Str("k"), Str("missing"), Int(7)}

	for _, input := range inputs {
		rec := mustDecode(t, input)
		for _, key := range keys {
			first, ok := rec.Find(key)
			all := rec.FindAll(key)
			if ok != (len(all) > 0) {
				t.Errorf("%q/%s: Find ok=%v but FindAll has %d", input, key, ok, len(all))
				continue
			}
			if ok && !first.Equal(all[0]) {
				t.Errorf("%q/%s: Find %s != FindAll[0] %s", input, key, first, all[0])
			}
		}
	}
}

func TestRecord_FindDoesNotMutate(t *testing.T) {
	rec := mustDecode(t, `a:4:{s:1:"a";i:1;s:1:"b";a:2:{s:1:"c";i:3;}}`)
	before := rec.String()

	rec.Find(Str("c"))
	rec.FindAll(Str("a"))

	if after := rec.String(); after != before {
		t.Errorf("Record changed: %s -> %s", before, after)
	}
}
