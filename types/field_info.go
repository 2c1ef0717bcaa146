package types

import "github.com/ledgerdb/ledgerdb/utils"

type SchemaType int

// JDBC type codes
const (
	Integer SchemaType = 4
	Varchar SchemaType = 12
	Boolean SchemaType = 16
	Long    SchemaType = -5
	Short   SchemaType = 5
	Date    SchemaType = 91
)

// IntSize is the on-disk width, in bytes, of every fixed-size numeric
// field (int, short, date, boolean flags). Kept in sync with utils.IntSize
// since both describe the same 4-byte big-endian wire format.
const IntSize = utils.IntSize

type FieldInfo struct {
	Type   SchemaType
	Length int
}
