package localstore

import "testing"

type sample struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// TestStoreSaveLoad проверяет запись и чтение документа хранилища.
func TestStoreSaveLoad(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Save("test-storage", sample{Name: "rent", Total: 1800}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got sample
	found, err := store.Load("test-storage", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected document to exist")
	}
	if got.Name != "rent" || got.Total != 1800 {
		t.Fatalf("unexpected document: %+v", got)
	}
}

// TestStoreLoadMissing проверяет чтение отсутствующего документа.
func TestStoreLoadMissing(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	var got sample
	found, err := store.Load("missing-storage", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatal("expected document to be missing")
	}
}

// TestStoreOverwrite проверяет полную перезапись документа при сохранении.
func TestStoreOverwrite(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Save("test-storage", sample{Name: "old", Total: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("test-storage", sample{Name: "new", Total: 2}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got sample
	if _, err := store.Load("test-storage", &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "new" || got.Total != 2 {
		t.Fatalf("expected overwritten document, got %+v", got)
	}
}
