package buffer

import (
	"github.com/ledgerdb/ledgerdb/file"
	"github.com/ledgerdb/ledgerdb/log"
)

// Buffer wraps a page and stores information about its status, such as
// whether it is pinned, which (if any) transaction last modified it, and
// the LSN of the log record describing that modification.
type Buffer struct {
	fileManager *file.Manager
	logManager  *log.Manager
	contents    *file.Page
	block       *file.BlockId
	pins        int
	txNum       int
	lsn         int
}

// NewBuffer creates a new buffer, wrapping a page whose contents will be
// managed by the buffer manager.
func NewBuffer(fileManager *file.Manager, logManager *log.Manager) *Buffer {
	return &Buffer{
		fileManager: fileManager,
		logManager:  logManager,
		contents:    file.NewPage(fileManager.BlockSize()),
		txNum:       -1,
		lsn:         -1,
	}
}

// Contents returns the page wrapped by this buffer.
func (b *Buffer) Contents() *file.Page {
	return b.contents
}

// Block returns the block that the buffer's page is mapped to.
func (b *Buffer) Block() *file.BlockId {
	return b.block
}

// SetModified marks the buffer as modified by the specified transaction.
// A negative lsn indicates that a log record was not generated for this
// update (e.g. the update occurred while formatting a new block).
func (b *Buffer) SetModified(txNum, lsn int) {
	b.txNum = txNum
	if lsn >= 0 {
		b.lsn = lsn
	}
}

// isPinned returns true if some client currently has this buffer pinned.
func (b *Buffer) isPinned() bool {
	return b.pins > 0
}

// modifyingTxn returns the transaction number that last modified the
// buffer's page, or -1 if it is unmodified.
func (b *Buffer) modifyingTxn() int {
	return b.txNum
}

// assignToBlock reads the specified block into the buffer's page, first
// flushing any existing modified contents.
func (b *Buffer) assignToBlock(block *file.BlockId) error {
	if err := b.flush(); err != nil {
		return err
	}
	b.block = block
	if err := b.fileManager.Read(block, b.contents); err != nil {
		return err
	}
	b.pins = 0
	return nil
}

// flush writes the buffer to disk if it is dirty, having first flushed the
// log record describing the modification (the write-ahead logging rule).
func (b *Buffer) flush() error {
	if b.txNum < 0 {
		return nil
	}
	if err := b.logManager.Flush(b.lsn); err != nil {
		return err
	}
	if err := b.fileManager.Write(b.block, b.contents); err != nil {
		return err
	}
	b.txNum = -1
	return nil
}

func (b *Buffer) pin() {
	b.pins++
}

func (b *Buffer) unpin() {
	if b.pins > 0 {
		b.pins--
	}
}
