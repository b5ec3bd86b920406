// Package format holds the constants and small decoders describing the
// Windows Registry hive file layout. It knows byte positions and encodings,
// not tree structure; the hive package walks records with these constants.
package format

var (
	// REGFSignature is the four-byte signature at the start of every hive file.
	REGFSignature = []byte{'r', 'e', 'g', 'f'}

	// HBINSignature is the four-byte signature at the beginning of each hive bin.
	HBINSignature = []byte{'h', 'b', 'i', 'n'}

	// NKSignature identifies an NK (Node Key) cell payload.
	NKSignature = []byte{'n', 'k'}

	// VKSignature identifies a VK (Value Key) cell payload.
	VKSignature = []byte{'v', 'k'}

	// LFSignature and LHSignature identify the accepted subkey leaves. Their
	// entries carry a name hint or hash next to each offset. LISignature is
	// the bare-offset leaf of older hive versions, which the decoder rejects.
	LFSignature = []byte{'l', 'f'}
	LHSignature = []byte{'l', 'h'}
	LISignature = []byte{'l', 'i'}

	// DBSignature identifies a big-data record: a block count and the
	// offset of a list of data segment cells.
	DBSignature = []byte{'d', 'b'}

	// RISignature identifies an RI (root index) record: a list of offsets to
	// leaves, used when a key has many subkeys.
	RISignature = []byte{'r', 'i'}
)

const (
	// HeaderSize is the size of the REGF base block. Every offset stored in
	// the hive is relative to the end of it.
	HeaderSize = 4096

	// HBINHeaderSize is the size of the HBIN header in bytes.
	HBINHeaderSize = 0x20

	// CellHeaderSize is the signed size prefix in front of every cell. Stored
	// offsets point at this prefix, so readers enter a block 4 bytes later.
	CellHeaderSize = 4

	// DefaultRootCellOffset is where the root NK lives in every hive written
	// by Windows: the first cell of the first HBIN.
	DefaultRootCellOffset = HBINHeaderSize

	// NoOffset marks an absent child list, value list, or class name.
	NoOffset int32 = -1

	// SignatureSize is the size of the two-letter record tags.
	SignatureSize = 2
)

// NK record layout, relative to the "nk" signature.
const (
	NKFlagsOffset   = 0x02 // USHORT
	NKNameLenOffset = 0x48 // USHORT name length (bytes)
	NKNameOffset    = 0x4C // start of inline name

	// NKRootFlags is the flags byte Windows writes on the root key
	// (KEY_COMP_NAME | KEY_NO_DELETE | KEY_HIVE_ENTRY).
	NKRootFlags = 0x2C

	// NKFlagCompressedName marks a name stored as 8-bit characters.
	NKFlagCompressedName = 0x20
)

// VK record layout, relative to the "vk" signature.
const (
	VKDataOffOffset = 0x08 // inline data or offset of the data cell
	VKFlagsOffset   = 0x10 // USHORT
	VKNameOffset    = 0x14 // start of inline name

	// VKFlagASCIIName marks a value name stored as 8-bit characters.
	VKFlagASCIIName = 0x0001

	// VKInlineThreshold is the declared length below which data is stored in
	// the record's own 4-byte data field. Lengths with the high bit set are
	// negative as int32 and fall below it as well.
	VKInlineThreshold = 5

	// VKInlineSize is the width of the inline data field.
	VKInlineSize = 4

	// DefaultValueName is reported for values stored with an empty name.
	DefaultValueName = "Default"
)

// Big-data layout.
const (
	// DBBlockSize is the largest segment a big-data record points at. Values
	// longer than this are stored through a "db" record.
	DBBlockSize = 16344

	// DBHeaderSize is signature (2) + count (2) + list offset (4) + reserved (4).
	DBHeaderSize = 12
)

// Subkey list layout.
const (
	// ListHeaderSize is signature (2 bytes) + count (2 bytes).
	ListHeaderSize = 4

	// LFEntrySize is one LF/LH entry: uint32 offset + uint32 hint/hash.
	LFEntrySize = 8

	// LIEntrySize is one LI entry: a uint32 offset. LI leaves are not
	// accepted as child indexes; the size is kept for building them in tests.
	LIEntrySize = 4

	// RIEntrySize is one RI slot: the uint32 offset of a leaf.
	RIEntrySize = 4

	// OffsetFieldSize is the size of an offset in value lists.
	OffsetFieldSize = 4
)

// REGF base block layout.
const (
	REGFSignatureSize      = 4
	REGFPrimarySeqOffset   = 0x004 // uint32
	REGFSecondarySeqOffset = 0x008 // uint32
	REGFTimeStampOffset    = 0x00C // FILETIME
	REGFMajorVersionOffset = 0x014 // uint32
	REGFMinorVersionOffset = 0x018 // uint32
	REGFTypeOffset         = 0x01C // uint32
	REGFFormatOffset       = 0x020 // uint32
	REGFRootCellOffset     = 0x024 // uint32, relative to HeaderSize
	REGFDataSizeOffset     = 0x028 // uint32
	REGFClusterOffset      = 0x02C // uint32
)
