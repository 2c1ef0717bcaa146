package tx

import (
	"fmt"
	"time"

	"github.com/ledgerdb/ledgerdb/buffer"
	"github.com/ledgerdb/ledgerdb/log"
)

// RecoveryManager performs undo-only recovery for a single transaction. It
// writes log records before a value is overwritten, so that an aborted or
// uncompleted transaction can be undone by rolling its updates back to
// their prior values.
type RecoveryManager struct {
	tx            *Transaction
	txNum         int
	logManager    *log.Manager
	bufferManager *buffer.Manager
}

// NewRecoveryManager creates a recovery manager for the specified
// transaction, and immediately writes a start record to the log.
func NewRecoveryManager(tx *Transaction, txNum int, logManager *log.Manager, bufferManager *buffer.Manager) *RecoveryManager {
	rm := &RecoveryManager{
		tx:            tx,
		txNum:         txNum,
		logManager:    logManager,
		bufferManager: bufferManager,
	}
	if _, err := WriteStartToLog(logManager, txNum); err != nil {
		// A failure here means the log itself is unusable; there is
		// nothing sensible left for the transaction to do.
		panic(fmt.Sprintf("failed to write start record: %v", err))
	}
	return rm
}

// Commit flushes all of the transaction's modified buffers, then writes and
// flushes a commit record to the log.
func (rm *RecoveryManager) Commit() error {
	if err := rm.bufferManager.FlushAll(rm.txNum); err != nil {
		return fmt.Errorf("failed to flush buffers for commit: %w", err)
	}
	lsn, err := WriteCommitToLog(rm.logManager, rm.txNum)
	if err != nil {
		return fmt.Errorf("failed to write commit record: %w", err)
	}
	return rm.logManager.Flush(lsn)
}

// Rollback undoes every change this transaction made, flushes the affected
// buffers, then writes and flushes a rollback record to the log.
func (rm *RecoveryManager) Rollback() error {
	if err := rm.doRollback(); err != nil {
		return err
	}
	if err := rm.bufferManager.FlushAll(rm.txNum); err != nil {
		return fmt.Errorf("failed to flush buffers for rollback: %w", err)
	}
	lsn, err := WriteRollbackToLog(rm.logManager, rm.txNum)
	if err != nil {
		return fmt.Errorf("failed to write rollback record: %w", err)
	}
	return rm.logManager.Flush(lsn)
}

// Recover undoes all uncompleted transactions, flushes the affected
// buffers, and writes a quiescent checkpoint record. It is called once at
// system startup, before any user transaction begins.
func (rm *RecoveryManager) Recover() error {
	finished := make(map[int]bool)

	iter, err := rm.logManager.Iterator()
	if err != nil {
		return fmt.Errorf("failed to create log iterator: %w", err)
	}

	for iter.HasNext() {
		bytes, err := iter.Next()
		if err != nil {
			return fmt.Errorf("failed to read log record: %w", err)
		}

		record, err := CreateLogRecord(bytes)
		if err != nil {
			return fmt.Errorf("failed to parse log record: %w", err)
		}

		if record.Op() == Checkpoint {
			break
		}

		switch record.Op() {
		case Commit, Rollback:
			finished[record.TxNumber()] = true
		default:
			if !finished[record.TxNumber()] {
				if err := record.Undo(rm.tx); err != nil {
					return fmt.Errorf("failed to undo log record: %w", err)
				}
			}
		}
	}

	if err := rm.bufferManager.FlushAll(rm.txNum); err != nil {
		return fmt.Errorf("failed to flush buffers during recovery: %w", err)
	}
	lsn, err := WriteCheckpointToLog(rm.logManager)
	if err != nil {
		return fmt.Errorf("failed to write checkpoint record: %w", err)
	}
	return rm.logManager.Flush(lsn)
}

// doRollback scans the log backward for this transaction's own records,
// undoing each one, and stops as soon as it reaches this transaction's
// start record.
func (rm *RecoveryManager) doRollback() error {
	iter, err := rm.logManager.Iterator()
	if err != nil {
		return fmt.Errorf("failed to create log iterator: %w", err)
	}

	for iter.HasNext() {
		bytes, err := iter.Next()
		if err != nil {
			return fmt.Errorf("failed to read log record: %w", err)
		}

		record, err := CreateLogRecord(bytes)
		if err != nil {
			return fmt.Errorf("failed to parse log record: %w", err)
		}

		if record.TxNumber() != rm.txNum {
			continue
		}
		if record.Op() == Start {
			return nil
		}
		if err := record.Undo(rm.tx); err != nil {
			return fmt.Errorf("failed to undo log record: %w", err)
		}
	}
	return nil
}

// SetInt writes a log record recording the value currently stored at the
// given offset of the buffer's block, before it is overwritten. Returns the
// LSN of the new log record.
func (rm *RecoveryManager) SetInt(buff *buffer.Buffer, offset int, _ int) (int, error) {
	oldVal := buff.Contents().GetInt(offset)
	return WriteSetIntToLog(rm.logManager, rm.txNum, buff.Block(), offset, oldVal)
}

// SetString writes a log record recording the value currently stored at the
// given offset of the buffer's block, before it is overwritten. Returns the
// LSN of the new log record.
func (rm *RecoveryManager) SetString(buff *buffer.Buffer, offset int, _ string) (int, error) {
	oldVal, err := buff.Contents().GetString(offset)
	if err != nil {
		return -1, err
	}
	return WriteSetStringToLog(rm.logManager, rm.txNum, buff.Block(), offset, oldVal)
}

// SetBool writes a log record recording the value currently stored at the
// given offset of the buffer's block, before it is overwritten. Returns the
// LSN of the new log record.
func (rm *RecoveryManager) SetBool(buff *buffer.Buffer, offset int, _ bool) (int, error) {
	oldVal := buff.Contents().GetBool(offset)
	return WriteSetBoolToLog(rm.logManager, rm.txNum, buff.Block(), offset, oldVal)
}

// SetDate writes a log record recording the value currently stored at the
// given offset of the buffer's block, before it is overwritten. Returns the
// LSN of the new log record.
func (rm *RecoveryManager) SetDate(buff *buffer.Buffer, offset int, _ time.Time) (int, error) {
	oldVal := buff.Contents().GetDate(offset)
	return WriteSetDateToLog(rm.logManager, rm.txNum, buff.Block(), offset, oldVal)
}

// SetLong writes a log record recording the value currently stored at the
// given offset of the buffer's block, before it is overwritten. Returns the
// LSN of the new log record.
func (rm *RecoveryManager) SetLong(buff *buffer.Buffer, offset int, _ int64) (int, error) {
	oldVal := buff.Contents().GetLong(offset)
	return WriteSetLongToLog(rm.logManager, rm.txNum, buff.Block(), offset, oldVal)
}

// SetShort writes a log record recording the value currently stored at the
// given offset of the buffer's block, before it is overwritten. Returns the
// LSN of the new log record.
func (rm *RecoveryManager) SetShort(buff *buffer.Buffer, offset int, _ int16) (int, error) {
	oldVal := buff.Contents().GetShort(offset)
	return WriteSetShortToLog(rm.logManager, rm.txNum, buff.Block(), offset, oldVal)
}
