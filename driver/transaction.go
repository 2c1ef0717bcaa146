package driver

import "github.com/ledgerdb/ledgerdb/tx"

// LedgerDBTx implements driver.Tx so that database/sql can manage
// a transaction with Commit() and Rollback().
// It just holds a reference to the connection so we can clear activeTx on commit/rollback
type LedgerDBTx struct {
	conn *LedgerDBConn
	tx   *tx.Transaction
}

func (t *LedgerDBTx) Commit() error {
	err := t.tx.Commit()
	t.conn.activeTx = nil
	return err
}

func (t *LedgerDBTx) Rollback() error {
	err := t.tx.Rollback()
	t.conn.activeTx = nil
	return err
}
