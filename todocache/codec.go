package todocache

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-todo-service/todo"
)

// listSnapshot is the envelope stored under the collection key. Wrapping the
// records means an empty collection still encodes to a non-empty, well-formed
// payload, so "entry present but empty" never looks like "no entry".
type listSnapshot struct {
	Records []*todo.Todo `msgpack:"records"`
}

// SnapshotCodec serializes collection snapshots crossing the cache boundary.
// msgpack is self-describing and round-trips time.Time without formatting
// ambiguity.
type SnapshotCodec struct{}

// EncodeList serializes the records. A nil slice encodes as an empty
// collection.
func (SnapshotCodec) EncodeList(records []*todo.Todo) ([]byte, error) {
	if records == nil {
		records = []*todo.Todo{}
	}
	data, err := msgpack.Marshal(listSnapshot{Records: records})
	if err != nil {
		return nil, &DecodeError{Op: "encode", Err: err}
	}
	return data, nil
}

// DecodeList deserializes a snapshot payload. Malformed payloads, including a
// zero-length one, return a *DecodeError so callers can degrade to the store.
func (SnapshotCodec) DecodeList(data []byte) ([]*todo.Todo, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Op: "decode", Err: errEmptyPayload}
	}
	var snap listSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, &DecodeError{Op: "decode", Err: err}
	}
	if snap.Records == nil {
		snap.Records = []*todo.Todo{}
	}
	return snap.Records, nil
}

var errEmptyPayload = &payloadError{"empty payload"}

type payloadError struct{ msg string }

func (e *payloadError) Error() string { return e.msg }

// DecodeError wraps snapshot serialization failures. The read path treats it
// the same as a cache miss.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return "snapshot " + e.Op + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }
