package driver

import (
	"database/sql/driver"
	"errors"
	"github.com/ledgerdb/ledgerdb/server"
	"github.com/ledgerdb/ledgerdb/tx"
)

// LedgerDBConn implements driver.Conn.
type LedgerDBConn struct {
	db *server.LedgerDB

	// activeTx is non-nil if we are in an explicit transaction
	activeTx *tx.Transaction
}

// Prepare returns a prepared statement, but we'll simply store the SQL string.
// Actual planning happens in Stmt.Exec / Stmt.Query (auto-commit style).
func (c *LedgerDBConn) Prepare(query string) (driver.Stmt, error) {
	return &LedgerDBStmt{
		conn:  c,
		query: query,
	}, nil
}

// Close is called when database/sql is done with this connection.
func (c *LedgerDBConn) Close() error {
	// There's no real "closing" an embedded DB, but if you had
	// a long-running Tx or resources pinned, you could clean them up here.
	return nil
}

// Begin starts a transaction
func (c *LedgerDBConn) Begin() (driver.Tx, error) {
	if c.activeTx != nil {
		// either error or nested transactions if supported
		return nil, errors.New("already in a transaction")
	}
	newTx := c.db.NewTx()
	c.activeTx = newTx
	return &LedgerDBTx{
		conn: c,
		tx:   newTx,
	}, nil
}
