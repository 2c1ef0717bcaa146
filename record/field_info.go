package record

import "github.com/ledgerdb/ledgerdb/types"

// SchemaType is shared with the types package so that the numeric type
// codes written to the field catalog are the same codes the tx and
// index layers switch on.
type SchemaType = types.SchemaType

const (
	Integer = types.Integer
	Varchar = types.Varchar
	Boolean = types.Boolean
	Long    = types.Long
	Short   = types.Short
	Date    = types.Date
)

type FieldInfo struct {
	fieldType SchemaType
	length    int
}
