package server

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/ledgerdb/ledgerdb/buffer"
	"github.com/ledgerdb/ledgerdb/file"
	"github.com/ledgerdb/ledgerdb/log"
	"github.com/ledgerdb/ledgerdb/metadata"
	"github.com/ledgerdb/ledgerdb/plan_impl"
	"github.com/ledgerdb/ledgerdb/tx"
	"github.com/ledgerdb/ledgerdb/tx/concurrency"
)

const (
	blockSize  = 400
	bufferSize = 8
	logFile    = "ledgerdb.log"
)

type LedgerDB struct {
	fileManager     *file.Manager
	bufferManager   *buffer.Manager
	logManager      *log.Manager
	metadataManager *metadata.Manager
	lockTable       *concurrency.LockTable
	queryPlanner    plan_impl.QueryPlanner
	updatePlanner   plan_impl.UpdatePlanner
	planner         *plan_impl.Planner
	logger          zerolog.Logger
}

// NewLedgerDBWithOptions is a constructor that is mostly useful for debugging purposes.
func NewLedgerDBWithOptions(dirName string, blockSize, bufferSize int) (*LedgerDB, error) {
	db := &LedgerDB{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("dir", dirName).Logger(),
	}
	var err error

	if db.fileManager, err = file.NewManager(dirName, blockSize); err != nil {
		return nil, err
	}
	if db.logManager, err = log.NewManager(db.fileManager, logFile); err != nil {
		return nil, err
	}
	db.bufferManager = buffer.NewManager(db.fileManager, db.logManager, bufferSize)
	db.lockTable = concurrency.NewLockTable()

	return db, nil
}

// NewLedgerDB creates a new LedgerDB instance using the naive, cost-oblivious
// query planner. Use this constructor for production code.
func NewLedgerDB(dirName string) (*LedgerDB, error) {
	return newLedgerDB(dirName, false)
}

// NewLedgerDBWithHeuristicPlanner creates a new LedgerDB instance whose
// query planner picks join order and access paths using per-table
// heuristics, favoring indexes over full table scans where the query's
// predicate allows it.
func NewLedgerDBWithHeuristicPlanner(dirName string) (*LedgerDB, error) {
	return newLedgerDB(dirName, true)
}

func newLedgerDB(dirName string, heuristic bool) (*LedgerDB, error) {
	db, err := NewLedgerDBWithOptions(dirName, blockSize, bufferSize)
	if err != nil {
		return nil, err
	}

	transaction := db.NewTx()
	isNew := db.fileManager.IsNew()

	if isNew {
		db.logger.Info().Msg("creating new database")
	} else {
		db.logger.Info().Msg("recovering existing database")
		if err := transaction.Recover(); err != nil {
			return nil, err
		}
	}

	if db.metadataManager, err = metadata.NewManager(isNew, transaction); err != nil {
		return nil, err
	}

	if heuristic {
		db.queryPlanner = plan_impl.NewHeuristicQueryPlanner(db.metadataManager)
	} else {
		db.queryPlanner = plan_impl.NewBasicQueryPlanner(db.metadataManager)
	}
	db.updatePlanner = plan_impl.NewBasicUpdatePlanner(db.metadataManager)
	db.planner = plan_impl.NewPlanner(db.queryPlanner, db.updatePlanner)

	err = transaction.Commit()
	return db, err
}

func (db *LedgerDB) NewTx() *tx.Transaction {
	return tx.NewTransaction(db.fileManager, db.logManager, db.bufferManager, db.lockTable)
}

func (db *LedgerDB) MetadataManager() *metadata.Manager {
	return db.metadataManager
}

func (db *LedgerDB) Planner() *plan_impl.Planner {
	return db.planner
}

func (db *LedgerDB) FileManager() *file.Manager {
	return db.fileManager
}

func (db *LedgerDB) LogManager() *log.Manager {
	return db.logManager
}

func (db *LedgerDB) BufferManager() *buffer.Manager {
	return db.bufferManager
}
