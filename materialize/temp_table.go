package materialize

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/ledgerdb/ledgerdb/record"
	"github.com/ledgerdb/ledgerdb/scan"
	"github.com/ledgerdb/ledgerdb/table"
	"github.com/ledgerdb/ledgerdb/tx"
)

const tempTablePrefix = "temp"

// TempTable represents a temporary table not registered in the catalog.
type TempTable struct {
	tx      *tx.Transaction
	tblName string
	layout  *record.Layout
}

// NewTempTable creates a new temporary table with the specified schema and transaction.
func NewTempTable(tx *tx.Transaction, schema *record.Schema) *TempTable {
	return &TempTable{
		tx:      tx,
		tblName: nextTableName(),
		layout:  record.NewLayout(schema),
	}
}

// Open opens a table scan for the temporary table.
func (tt *TempTable) Open() (scan.UpdateScan, error) {
	return table.NewTableScan(tt.tx, tt.tblName, tt.layout)
}

// TableName returns the name of the temporary table.
func (tt *TempTable) TableName() string {
	return tt.tblName
}

// GetLayout returns the table's metadata (layout).
func (tt *TempTable) GetLayout() *record.Layout {
	return tt.layout
}

// nextTableName generates a unique name for the next temporary table. The
// name keeps the "temp" prefix so the file manager's startup purge rule
// still finds and deletes it.
func nextTableName() string {
	return fmt.Sprintf("%s%s", tempTablePrefix, uuid.New().String())
}
