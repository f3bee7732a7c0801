package services

import "sync"

// RecoveryInfo is what the client is told about the last startup.
type RecoveryInfo struct {
	Recovered bool    `json:"recovered"`
	ClosedIDs []int64 `json:"closedIds"`
}

// RecoveryNotice carries the recovery result to whoever asks first. It
// holds a single message: Deliver fills the slot once, Take empties it,
// and every later Take reports that nothing was recovered.
type RecoveryNotice struct {
	slot chan []int64
	once sync.Once
}

func NewRecoveryNotice() *RecoveryNotice {
	return &RecoveryNotice{slot: make(chan []int64, 1)}
}

// Deliver publishes the closed ids. Calls after the first are ignored.
func (n *RecoveryNotice) Deliver(closedIDs []int64) {
	n.once.Do(func() {
		ids := make([]int64, len(closedIDs))
		copy(ids, closedIDs)
		n.slot <- ids
	})
}

func (n *RecoveryNotice) Take() RecoveryInfo {
	select {
	case ids := <-n.slot:
		return RecoveryInfo{Recovered: len(ids) > 0, ClosedIDs: ids}
	default:
		return RecoveryInfo{Recovered: false, ClosedIDs: []int64{}}
	}
}
