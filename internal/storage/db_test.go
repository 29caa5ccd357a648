package storage

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// testDB runs the shared test suite against a DB implementation.
func testDB(t *testing.T, db DB) {
	t.Helper()

	t.Run("PutAndGet", func(t *testing.T) {
		if err := db.Put([]byte("key1"), []byte("value1")); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
		val, err := db.Get([]byte("key1"))
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if !bytes.Equal(val, []byte("value1")) {
			t.Errorf("Get() = %q, want %q", val, "value1")
		}
	})

	t.Run("GetNonexistent", func(t *testing.T) {
		_, err := db.Get([]byte("nonexistent"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() for missing key error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Has", func(t *testing.T) {
		db.Put([]byte("exists"), []byte("yes"))

		ok, err := db.Has([]byte("exists"))
		if err != nil {
			t.Fatalf("Has() error: %v", err)
		}
		if !ok {
			t.Error("Has() = false for existing key")
		}

		ok, err = db.Has([]byte("missing"))
		if err != nil {
			t.Fatalf("Has() error: %v", err)
		}
		if ok {
			t.Error("Has() = true for missing key")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		db.Put([]byte("ow"), []byte("first"))
		db.Put([]byte("ow"), []byte("second"))

		val, err := db.Get([]byte("ow"))
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if !bytes.Equal(val, []byte("second")) {
			t.Errorf("Get() after overwrite = %q, want %q", val, "second")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db.Put([]byte("del"), []byte("value"))
		if err := db.Delete([]byte("del")); err != nil {
			t.Fatalf("Delete() error: %v", err)
		}
		if ok, _ := db.Has([]byte("del")); ok {
			t.Error("key should be gone after Delete()")
		}
		if err := db.Delete([]byte("never-existed")); err != nil {
			t.Errorf("Delete() nonexistent key error: %v", err)
		}
	})

	t.Run("ValuesAreCopied", func(t *testing.T) {
		in := []byte("abc")
		db.Put([]byte("copy"), in)
		in[0] = 'x'

		got, _ := db.Get([]byte("copy"))
		if string(got) != "abc" {
			t.Errorf("stored value changed with caller's slice: %q", got)
		}
		got[0] = 'y'
		again, _ := db.Get([]byte("copy"))
		if string(again) != "abc" {
			t.Errorf("stored value changed with returned slice: %q", again)
		}
	})

	t.Run("ForEachOrdered", func(t *testing.T) {
		db.Put([]byte("prefix/c"), []byte("3"))
		db.Put([]byte("prefix/a"), []byte("1"))
		db.Put([]byte("prefix/b"), []byte("2"))
		db.Put([]byte("other/x"), []byte("4"))

		var keys []string
		err := db.ForEach([]byte("prefix/"), func(key, value []byte) error {
			keys = append(keys, string(key))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach() error: %v", err)
		}
		want := []string{"prefix/a", "prefix/b", "prefix/c"}
		if fmt.Sprint(keys) != fmt.Sprint(want) {
			t.Errorf("ForEach(prefix/) keys = %v, want %v", keys, want)
		}
	})

	t.Run("ForEachStop", func(t *testing.T) {
		stop := errors.New("stop")
		var count int
		err := db.ForEach([]byte("prefix/"), func(key, value []byte) error {
			count++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("ForEach() error = %v, want stop", err)
		}
		if count != 1 {
			t.Errorf("callback ran %d times, want 1", count)
		}
	})
}

func TestMemoryDB(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	testDB(t, db)
}

func TestMemoryDB_Concurrent(t *testing.T) {
	db := NewMemory()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := []byte(fmt.Sprintf("w%d/%03d", w, i))
				db.Put(key, []byte{byte(i)})
				db.Get(key)
				db.ForEach([]byte(fmt.Sprintf("w%d/", w)), func(_, _ []byte) error { return nil })
			}
		}(w)
	}
	wg.Wait()

	if db.Len() != 800 {
		t.Errorf("Len() = %d, want 800", db.Len())
	}
}

func TestMemoryDB_ForEachMayWrite(t *testing.T) {
	db := NewMemory()
	db.Put([]byte("a/1"), []byte("x"))
	db.Put([]byte("a/2"), []byte("y"))

	err := db.ForEach([]byte("a/"), func(key, _ []byte) error {
		return db.Delete(key)
	})
	if err != nil {
		t.Fatalf("ForEach() error: %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("Len() = %d, want 0", db.Len())
	}
}

func TestMemoryDB_Close(t *testing.T) {
	db := NewMemory()
	db.Put([]byte("k"), []byte("v"))
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", db.Len())
	}
}
