// Package hive reads Windows Registry hive files into an in-memory tree.
//
// # Overview
//
// A hive file is a 4KB REGF base block followed by hive bins holding cells.
// Every offset stored inside the file is relative to the end of the base
// block and points at a cell's 4-byte size prefix, so a record stored at
// offset off begins at absolute position 4096 + off + 4.
//
// Open decodes the whole key tree eagerly, starting from the root "nk"
// record, following child indexes ("lf", "lh", "ri") and value lists
// down to "vk" records and their data cells. Any malformed record aborts the
// decode; no partial tree is ever returned.
//
// # Opening a Hive
//
//	h, err := hive.Open("/path/to/SYSTEM")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(h.Node(h.Root()).Name)
//
// The file is memory-mapped on unix and read into memory elsewhere. All
// retained bytes are copied, and the mapping is released before Open returns,
// so the returned *Hive needs no Close and is safe for concurrent readers.
//
// # Navigating
//
// Nodes and values live in arenas addressed by NodeID and ValueID:
//
//	id, err := h.ResolveNode(`ControlSet001\Control\Lsa`)
//	v, ok, err := h.ResolveValue(`Select\Default`)
//
// Path segments are separated by a backslash and matched case-sensitively.
package hive
