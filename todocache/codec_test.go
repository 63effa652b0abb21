package todocache

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-todo-service/todo"
)

func TestSnapshotCodec_RoundTrip(t *testing.T) {
	codec := SnapshotCodec{}
	createdAt := time.Date(2024, 3, 17, 9, 30, 15, 123456789, time.UTC)
	records := []*todo.Todo{
		{ID: 1, Title: "buy milk", Completed: false, CreatedAt: createdAt},
		{ID: 2, Title: "走一走 🐕", Completed: true, CreatedAt: createdAt.Add(time.Minute)},
		{ID: 3, Title: "Ünïcodé — títlè", Completed: false, CreatedAt: createdAt.Add(2 * time.Hour)},
	}

	data, err := codec.EncodeList(records)
	if err != nil {
		t.Fatalf("EncodeList failed: %v", err)
	}

	decoded, err := codec.DecodeList(data)
	if err != nil {
		t.Fatalf("DecodeList failed: %v", err)
	}
	if len(decoded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(decoded))
	}
	for i, want := range records {
		got := decoded[i]
		if got.ID != want.ID || got.Title != want.Title || got.Completed != want.Completed {
			t.Errorf("record %d mismatch: got %+v, want %+v", i, got, want)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("record %d timestamp mismatch: got %v, want %v", i, got.CreatedAt, want.CreatedAt)
		}
	}
}

func TestSnapshotCodec_EmptyCollectionIsNotAbsent(t *testing.T) {
	codec := SnapshotCodec{}

	data, err := codec.EncodeList(nil)
	if err != nil {
		t.Fatalf("EncodeList failed: %v", err)
	}
	// The envelope keeps an empty collection distinguishable from a
	// missing entry: the payload itself is never empty.
	if len(data) == 0 {
		t.Fatal("empty collection must encode to a non-empty payload")
	}

	decoded, err := codec.DecodeList(data)
	if err != nil {
		t.Fatalf("DecodeList failed: %v", err)
	}
	if decoded == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(decoded) != 0 {
		t.Fatalf("expected no records, got %d", len(decoded))
	}
}

func TestSnapshotCodec_MalformedPayload(t *testing.T) {
	codec := SnapshotCodec{}

	for name, payload := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("definitely not msgpack"),
	} {
		_, err := codec.DecodeList(payload)
		if err == nil {
			t.Errorf("%s: expected decode error", name)
			continue
		}
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("%s: expected *DecodeError, got %T", name, err)
		}
	}
}
