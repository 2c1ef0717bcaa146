package tx

import (
	"github.com/ledgerdb/ledgerdb/file"
	"github.com/ledgerdb/ledgerdb/log"
	"github.com/ledgerdb/ledgerdb/types"
)

type CheckpointRecord struct {
	LogRecord
}

// NewCheckpointRecord creates a new CheckpointRecord. A checkpoint record
// carries no payload beyond its operation code.
func NewCheckpointRecord() (*CheckpointRecord, error) {
	return &CheckpointRecord{}, nil
}

// Op returns the type of the log record.
func (r *CheckpointRecord) Op() LogRecordType {
	return Checkpoint
}

// TxNumber returns a dummy transaction number, since a checkpoint record
// belongs to no transaction.
func (r *CheckpointRecord) TxNumber() int {
	return -1
}

// Undo does nothing. CheckpointRecord does not change any data.
func (r *CheckpointRecord) Undo(_ *Transaction) error {
	return nil
}

// String returns a string representation of the log record.
func (r *CheckpointRecord) String() string {
	return "<CHECKPOINT>"
}

// WriteCheckpointToLog writes a quiescent checkpoint record to the log.
// The method returns the LSN of the new log record.
func WriteCheckpointToLog(logManager *log.Manager) (int, error) {
	record := make([]byte, types.IntSize)

	page := file.NewPageFromBytes(record)
	page.SetInt(0, int(Checkpoint))

	return logManager.Append(record)
}
