package query

import "github.com/ledgerdb/ledgerdb/types"

// Operator is shared with the types package so that a term built by the
// query layer can be compared directly against operators produced by the
// parser and the planner.
type Operator = types.Operator

const (
	EQ = types.EQ
	NE = types.NE
	LT = types.LT
	LE = types.LE
	GT = types.GT
	GE = types.GE
)
