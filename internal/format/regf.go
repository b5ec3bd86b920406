package format

import (
	"bytes"

	"github.com/joshuapare/hiveparse/internal/buf"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// Header captures the subset of the REGF base block the reader reports.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   4    'r' 'e' 'g' 'f'
//	 0x004   4    Primary sequence number
//	 0x008   4    Secondary sequence number
//	 0x00C   8    Last write timestamp (FILETIME)
//	 0x014   4    Major version
//	 0x018   4    Minor version
//	 0x01C   4    Type (0 = primary, 1 = alternate)
//	 0x024   4    Offset (relative to first HBIN) of the root cell (NK)
//	 0x028   4    Total size of HBIN data
type Header struct {
	PrimarySequence   uint32
	SecondarySequence uint32
	LastWriteRaw      uint64
	MajorVersion      uint32
	MinorVersion      uint32
	Type              uint32
	RootCellOffset    uint32
	HiveBinsDataSize  uint32
}

// ParseHeader checks the "regf" magic and extracts the base block fields.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < REGFSignatureSize || !bytes.Equal(b[:REGFSignatureSize], REGFSignature) {
		return Header{}, types.ErrMalformedHive
	}
	if len(b) < HeaderSize {
		return Header{}, &types.Error{
			Kind: types.ErrKindMalformedHive,
			Msg:  "regf header truncated",
			Err:  types.OutOfBounds(0, HeaderSize, len(b)),
		}
	}
	return Header{
		PrimarySequence:   buf.U32LE(b[REGFPrimarySeqOffset:]),
		SecondarySequence: buf.U32LE(b[REGFSecondarySeqOffset:]),
		LastWriteRaw:      buf.U64LE(b[REGFTimeStampOffset:]),
		MajorVersion:      buf.U32LE(b[REGFMajorVersionOffset:]),
		MinorVersion:      buf.U32LE(b[REGFMinorVersionOffset:]),
		Type:              buf.U32LE(b[REGFTypeOffset:]),
		RootCellOffset:    buf.U32LE(b[REGFRootCellOffset:]),
		HiveBinsDataSize:  buf.U32LE(b[REGFDataSizeOffset:]),
	}, nil
}

// Info converts the header into the public metadata form.
func (h Header) Info() types.HiveInfo {
	return types.HiveInfo{
		PrimarySequence:   h.PrimarySequence,
		SecondarySequence: h.SecondarySequence,
		LastWrite:         FiletimeToTime(h.LastWriteRaw),
		MajorVersion:      h.MajorVersion,
		MinorVersion:      h.MinorVersion,
		Type:              h.Type,
		RootCellOffset:    h.RootCellOffset,
		HiveBinsDataSize:  h.HiveBinsDataSize,
	}
}
