package types

import "time"

// HiveInfo exposes registry hive header (REGF) metadata.
type HiveInfo struct {
	PrimarySequence   uint32    // Primary sequence number
	SecondarySequence uint32    // Secondary sequence number
	LastWrite         time.Time // Last write timestamp
	MajorVersion      uint32    // Format major version
	MinorVersion      uint32    // Format minor version
	Type              uint32    // 0 = primary, 1 = alternate
	RootCellOffset    uint32    // Offset of root NK record, relative to the first HBIN
	HiveBinsDataSize  uint32    // Total size of HBIN data
}

// TreeStats summarizes a decoded hive.
type TreeStats struct {
	Keys     int // number of decoded key nodes, root included
	Values   int // number of decoded values
	MaxDepth int // deepest key level, root = 0
}
