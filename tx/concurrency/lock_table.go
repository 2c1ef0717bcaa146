package concurrency

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ledgerdb/ledgerdb/file"
)

// maxWaitTime bounds how long a transaction waits for a conflicting lock
// before it is aborted. This is the "die" half of a wait-die policy: rather
// than detect deadlock cycles directly, a transaction that waits too long
// simply gives up.
const maxWaitTime = 10 * time.Second

// LockTable is the single, database-wide table of locks. Every transaction's
// concurrency Manager shares the same LockTable instance so that locks held
// by one transaction are visible to every other transaction.
type LockTable struct {
	mu    sync.Mutex
	cond  *sync.Cond
	locks map[file.BlockId]int
}

// NewLockTable creates an empty lock table. A database opens exactly one of
// these and hands it to every transaction it creates.
func NewLockTable() *LockTable {
	lt := &LockTable{locks: make(map[file.BlockId]int)}
	lt.cond = sync.NewCond(&lt.mu)
	return lt
}

// sLock grants a shared lock on the specified block, blocking while the
// block is exclusively locked by another transaction.
func (lt *LockTable) sLock(blk *file.BlockId) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if err := lt.waitFor(blk, func() bool { return lt.locks[*blk] >= 0 }); err != nil {
		return err
	}
	lt.locks[*blk] = lt.locks[*blk] + 1
	return nil
}

// xLock grants an exclusive lock on the specified block, blocking until no
// other transaction holds any lock (shared or exclusive) on it.
func (lt *LockTable) xLock(blk *file.BlockId) error {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if err := lt.waitFor(blk, func() bool { return lt.locks[*blk] <= 1 }); err != nil {
		return err
	}
	lt.locks[*blk] = -1
	return nil
}

// unlock releases whatever lock this caller holds on the block. Since
// multiple shared holders are not distinguished from one another, releasing
// an exclusive lock and releasing the last shared lock both clear the slot
// and wake up waiters.
func (lt *LockTable) unlock(blk *file.BlockId) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	val := lt.locks[*blk]
	if val > 1 {
		lt.locks[*blk] = val - 1
	} else {
		delete(lt.locks, *blk)
		lt.cond.Broadcast()
	}
}

// waitFor blocks on the table's condition variable until ready reports true
// or maxWaitTime elapses. Must be called with lt.mu held.
func (lt *LockTable) waitFor(blk *file.BlockId, ready func() bool) error {
	if ready() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitTime)
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			lt.mu.Lock()
			lt.cond.Broadcast()
			lt.mu.Unlock()
		case <-done:
		}
	}()

	for !ready() {
		lt.cond.Wait()
		if ctx.Err() != nil && !ready() {
			return fmt.Errorf("lock abort exception: timed out waiting for lock on block %s", blk.String())
		}
	}
	return nil
}
