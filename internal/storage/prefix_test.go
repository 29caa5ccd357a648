package storage

import (
	"testing"
)

func TestPrefixDB(t *testing.T) {
	testDB(t, NewPrefixDB(NewMemory(), []byte("ns/")))
}

func TestPrefixDB_Isolation(t *testing.T) {
	inner := NewMemory()
	a := NewPrefixDB(inner, []byte("a/"))
	b := NewPrefixDB(inner, []byte("b/"))

	a.Put([]byte("key"), []byte("from-a"))
	b.Put([]byte("key"), []byte("from-b"))

	got, err := a.Get([]byte("key"))
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != "from-a" {
		t.Errorf("a.Get = %q, want from-a", got)
	}

	raw, err := inner.Get([]byte("b/key"))
	if err != nil {
		t.Fatalf("inner Get() error: %v", err)
	}
	if string(raw) != "from-b" {
		t.Errorf("inner b/key = %q, want from-b", raw)
	}
}

func TestPrefixDB_ForEachStripsPrefix(t *testing.T) {
	inner := NewMemory()
	db := NewPrefixDB(inner, []byte("ns/"))
	db.Put([]byte("x/1"), []byte("v"))
	inner.Put([]byte("other/x/1"), []byte("v"))

	var keys []string
	db.ForEach([]byte("x/"), func(key, _ []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	if len(keys) != 1 || keys[0] != "x/1" {
		t.Errorf("keys = %v, want [x/1]", keys)
	}
}

func TestPrefixDB_DeleteAll(t *testing.T) {
	inner := NewMemory()
	db := NewPrefixDB(inner, []byte("ns/"))
	for _, k := range []string{"a", "b", "c"} {
		db.Put([]byte(k), []byte("v"))
	}
	inner.Put([]byte("keep"), []byte("v"))

	if err := db.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() error: %v", err)
	}
	if inner.Len() != 1 {
		t.Errorf("inner Len() = %d, want 1", inner.Len())
	}
	if ok, _ := inner.Has([]byte("keep")); !ok {
		t.Error("DeleteAll removed a key outside its namespace")
	}
}
