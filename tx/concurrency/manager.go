package concurrency

import (
	"github.com/ledgerdb/ledgerdb/file"
)

// Manager implements strict two-phase locking for a single transaction. It
// tracks the locks this transaction already holds so it never asks the
// shared lock table for a lock twice, and releases everything it acquired
// when the transaction ends.
type Manager struct {
	lockTable *LockTable
	locks     map[file.BlockId]string
}

// NewManager creates a concurrency manager for a single transaction. lt is
// the database-wide lock table shared by every other transaction's manager.
func NewManager(lt *LockTable) *Manager {
	return &Manager{lockTable: lt, locks: make(map[file.BlockId]string)}
}

// SLock obtains a shared lock on the specified block, if the transaction
// does not already have a lock on it.
func (m *Manager) SLock(blk *file.BlockId) error {
	if _, ok := m.locks[*blk]; ok {
		return nil
	}
	if err := m.lockTable.sLock(blk); err != nil {
		return err
	}
	m.locks[*blk] = "S"
	return nil
}

// XLock obtains an exclusive lock on the specified block, if the
// transaction does not already have one. To avoid a three-way conflict
// between two readers trying to upgrade at once, it first acquires a
// shared lock before asking for the exclusive one.
func (m *Manager) XLock(blk *file.BlockId) error {
	if m.hasXLock(blk) {
		return nil
	}
	if err := m.SLock(blk); err != nil {
		return err
	}
	if err := m.lockTable.xLock(blk); err != nil {
		return err
	}
	m.locks[*blk] = "X"
	return nil
}

// Release releases all locks held by this transaction.
func (m *Manager) Release() {
	for blk := range m.locks {
		m.lockTable.unlock(&blk)
	}
	m.locks = make(map[file.BlockId]string)
}

func (m *Manager) hasXLock(blk *file.BlockId) bool {
	return m.locks[*blk] == "X"
}
