// Command ledgerdb is an interactive SQL shell for a LedgerDB database
// directory, in the spirit of a traditional embedded-database REPL: it
// reads one statement per line, prints SELECT results in aligned
// columns, and reports the row or update count for everything else.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerdb/ledgerdb/record"
	"github.com/ledgerdb/ledgerdb/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbDir string
	var blockSize int
	var numBuffers int
	var heuristic bool

	cmd := &cobra.Command{
		Use:   "ledgerdb",
		Short: "Interactive SQL shell for a LedgerDB database directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(dbDir, heuristic)
		},
	}

	cmd.Flags().StringVarP(&dbDir, "dir", "d", "studentdb", "database directory to open (created if it does not exist)")
	cmd.Flags().IntVar(&blockSize, "block-size", 400, "block size in bytes (accepted but not used; the database always uses 400)")
	cmd.Flags().IntVar(&numBuffers, "buffers", 8, "number of buffer pool frames (accepted but not used; the database always uses 8)")
	cmd.Flags().BoolVar(&heuristic, "heuristic", false, "use the heuristic, index-aware query planner instead of the naive one")

	return cmd
}

func runShell(dbDir string, heuristic bool) error {
	var db *server.LedgerDB
	var err error
	if heuristic {
		db, err = server.NewLedgerDBWithHeuristicPlanner(dbDir)
	} else {
		db, err = server.NewLedgerDB(dbDir)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", dbDir, err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for {
		fmt.Fprint(writer, "ledgerdb> ")
		writer.Flush()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(strings.Fields(line)[0], "exit") {
			fmt.Fprintln(writer, "bye")
			break
		}
		execLine(db, writer, line)
	}
	return scanner.Err()
}

func execLine(db *server.LedgerDB, w *bufio.Writer, line string) {
	firstWord := strings.ToLower(strings.Fields(line)[0])
	if firstWord == "select" {
		execQuery(db, w, line)
		return
	}
	execUpdate(db, w, line)
}

func execQuery(db *server.LedgerDB, w *bufio.Writer, sqlText string) {
	transaction := db.NewTx()
	queryPlan, err := db.Planner().CreateQueryPlan(sqlText, transaction)
	if err != nil {
		_ = transaction.Rollback()
		fmt.Fprintf(w, "invalid query: %s (%v)\n", sqlText, err)
		return
	}

	resultScan, err := queryPlan.Open()
	if err != nil {
		_ = transaction.Rollback()
		fmt.Fprintf(w, "invalid query: %s (%v)\n", sqlText, err)
		return
	}
	defer resultScan.Close()

	count, err := printResultSet(w, resultScan, queryPlan.Schema())
	if err != nil {
		_ = transaction.Rollback()
		fmt.Fprintf(w, "error reading result set: %v\n", err)
		return
	}
	if err := transaction.Commit(); err != nil {
		fmt.Fprintf(w, "commit error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Rows: %d\n", count)
}

// columnScan is the subset of scan.Scan that printResultSet needs to
// read one field at a time.
type columnScan interface {
	Next() (bool, error)
	GetVal(fieldName string) (any, error)
}

// printResultSet prints the column header, a separator rule, and every
// row of the result set, with each column padded to its declared
// display width.
func printResultSet(w *bufio.Writer, s columnScan, schema *record.Schema) (int, error) {
	columns := schema.Fields()
	widths := make(map[string]int, len(columns))
	for _, name := range columns {
		widths[name] = columnWidth(schema, name)
		fmt.Fprintf(w, "%-*s ", widths[name], name)
	}
	fmt.Fprintln(w)
	for _, name := range columns {
		fmt.Fprintf(w, "%s ", strings.Repeat("-", widths[name]))
	}
	fmt.Fprintln(w)

	count := 0
	for {
		hasNext, err := s.Next()
		if err != nil {
			return count, err
		}
		if !hasNext {
			break
		}
		for _, name := range columns {
			v, err := s.GetVal(name)
			if err != nil {
				return count, err
			}
			fmt.Fprintf(w, "%-*v ", widths[name], v)
		}
		fmt.Fprintln(w)
		count++
	}
	return count, nil
}

// columnWidth sizes a column to fit its declared length (for VARCHAR
// fields) or a fixed width for fixed-size types, never narrower than
// the column name itself.
func columnWidth(schema *record.Schema, name string) int {
	width := 10
	if schema.Type(name) == record.Varchar {
		if length := schema.Length(name); length > width {
			width = length
		}
	}
	if len(name) > width {
		width = len(name)
	}
	return width
}

func execUpdate(db *server.LedgerDB, w *bufio.Writer, sqlText string) {
	transaction := db.NewTx()
	affected, err := db.Planner().ExecuteUpdate(sqlText, transaction)
	if err != nil {
		_ = transaction.Rollback()
		fmt.Fprintf(w, "invalid command: %s (%v)\n", sqlText, err)
		return
	}
	if err := transaction.Commit(); err != nil {
		fmt.Fprintf(w, "commit error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "affected: %d\n", affected)
}
