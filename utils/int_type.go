package utils

// IntSize is the on-disk width of an integer field, in bytes. The wire
// format is fixed at 4-byte big-endian regardless of host architecture,
// since layouts and log records are read back after a restart.
const IntSize = 4
