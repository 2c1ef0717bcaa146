package tx

import (
	"errors"
	"github.com/ledgerdb/ledgerdb/file"
)

// LogRecordType is the type of log record.
type LogRecordType int

const (
	Checkpoint LogRecordType = iota
	Start
	Commit
	Rollback
	SetInt
	SetString
	SetBool
	SetDate
	SetLong
	SetShort
)

func (t LogRecordType) String() string {
	switch t {
	case Checkpoint:
		return "Checkpoint"
	case Start:
		return "Start"
	case Commit:
		return "Commit"
	case Rollback:
		return "Rollback"
	case SetInt:
		return "SetInt"
	case SetString:
		return "SetString"
	case SetBool:
		return "SetBool"
	case SetDate:
		return "SetDate"
	case SetLong:
		return "SetLong"
	case SetShort:
		return "SetShort"
	default:
		return "Unknown"
	}
}

func FromCode(code int) (LogRecordType, error) {
	switch LogRecordType(code) {
	case Checkpoint, Start, Commit, Rollback, SetInt, SetString, SetBool, SetDate, SetLong, SetShort:
		return LogRecordType(code), nil
	default:
		return -1, errors.New("unknown LogRecordType code")
	}
}

// LogRecord interface for log records.
type LogRecord interface {
	// Op returns the log record type.
	Op() LogRecordType

	// TxNumber returns the transaction ID stored with the log record.
	TxNumber() int

	// Undo undoes the operation encoded by this log record.
	// The only log record types for which this method does anything interesting
	// are the SET* records.
	Undo(tx *Transaction) error
}

// CreateLogRecord interprets the bytes to create the appropriate log record. This method assumes that the first 4 bytes
// of the byte array represent the log record type.
func CreateLogRecord(bytes []byte) (LogRecord, error) {
	p := file.NewPageFromBytes(bytes)
	code := p.GetInt(0)
	recordType, err := FromCode(code)
	if err != nil {
		return nil, err
	}

	switch recordType {
	case Checkpoint:
		return NewCheckpointRecord()
	case Start:
		return NewStartRecord(p)
	case Commit:
		return NewCommitRecord(p)
	case Rollback:
		return NewRollbackRecord(p)
	case SetInt:
		return NewSetIntRecord(p)
	case SetString:
		return NewSetStringRecord(p)
	case SetBool:
		return NewSetBoolRecord(p)
	case SetDate:
		return NewSetDateRecord(p)
	case SetLong:
		return NewSetLongRecord(p)
	case SetShort:
		return NewSetShortRecord(p)
	default:
		return nil, errors.New("unexpected LogRecordType")
	}
}
