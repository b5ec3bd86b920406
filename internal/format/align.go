package format

const (
	// CellAlignment is the required alignment of cells within HBINs.
	CellAlignment = 8

	// HBINAlignment is the required alignment of hive bins.
	HBINAlignment = 0x1000
)

// Align8 returns n aligned up to the next 8-byte boundary.
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + CellAlignment - 1) &^ (CellAlignment - 1)
}

// AlignHBIN returns n aligned up to the next 4KB boundary.
func AlignHBIN(n int) int {
	return (n + HBINAlignment - 1) &^ (HBINAlignment - 1)
}
