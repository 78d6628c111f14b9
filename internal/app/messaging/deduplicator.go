package messaging

import (
	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/crypto/blake2b"
)

type digest = [blake2b.Size256]byte

// StateDeduplicator suppresses sending the same snapshot twice in a row
// on a topic.
type StateDeduplicator struct {
	last *xsync.Map[string, digest]
}

func NewStateDeduplicator() *StateDeduplicator {
	return &StateDeduplicator{
		last: xsync.NewMap[string, digest](),
	}
}

// ShouldSend reports whether snapshot differs from the last snapshot sent
// on topic and records it when it does.
func (d *StateDeduplicator) ShouldSend(topic string, snapshot []byte) bool {
	sum := blake2b.Sum256(snapshot)

	send := false
	d.last.Compute(topic, func(prev digest, loaded bool) (digest, xsync.ComputeOp) {
		if loaded && prev == sum {
			return prev, xsync.CancelOp
		}
		send = true
		return sum, xsync.UpdateOp
	})
	return send
}

// Reset forgets the last snapshot of topic, so the next one is sent.
func (d *StateDeduplicator) Reset(topic string) {
	d.last.Delete(topic)
}

// ResetAll forgets every topic. Used after a page reload.
func (d *StateDeduplicator) ResetAll() {
	d.last.Clear()
}
