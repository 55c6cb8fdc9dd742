package amqp

import (
	"testing"
	"time"
)

func TestSnapshotSavedMessageRoundTrip(t *testing.T) {
	msg := NewSnapshotSavedMessage(42)
	if msg.Revision != 42 {
		t.Fatalf("revision: %d", msg.Revision)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := SnapshotSavedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Revision != msg.Revision || !got.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, msg)
	}
}

func TestSnapshotSavedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := SnapshotSavedMessageFromJSON([]byte("{bad")); err == nil {
		t.Fatal("expected error")
	}
}
