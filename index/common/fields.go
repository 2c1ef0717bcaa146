package common

// Field names shared by every index implementation's backing table: the
// block number and slot of the indexed record, and the indexed value
// itself.
const (
	BlockField     = "block"
	IDField        = "id"
	DataValueField = "dataval"
)
