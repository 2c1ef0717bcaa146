package driver

import (
	"database/sql"
	"database/sql/driver"
	"github.com/ledgerdb/ledgerdb/server"
)

const dbName = "ledgerdb"

// Register the driver when this package is imported.
func init() {
	sql.Register(dbName, &LedgerDBDriver{})
}

// LedgerDBDriver implements database/sql/driver.Driver.
var _ driver.Driver = (*LedgerDBDriver)(nil)

type LedgerDBDriver struct{}

// Open is the entry point. The directory is the path to the DB directory.
func (d *LedgerDBDriver) Open(directory string) (driver.Conn, error) {
	db, err := server.NewLedgerDB(directory)
	if err != nil {
		return nil, err
	}
	return &LedgerDBConn{
		db: db,
		// We do not open a transaction here. We'll open a new one for each statement (auto-commit).
	}, nil
}
