package testutil

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/joshuapare/hiveparse/internal/format"
	"github.com/joshuapare/hiveparse/pkg/types"
)

// LsaKeys are the SYSTEM hive keys whose class names carry the scrambled boot key.
var LsaKeys = []string{"JD", "Skew1", "GBG", "Data"}

// FixtureTime is the timestamp stamped on every synthetic key.
var FixtureTime = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

// SystemKey returns a minimal SYSTEM hive tree: Select\Default = controlSet
// and ControlSet00N\Control\Lsa\{JD,Skew1,GBG,Data} whose class names are the
// UTF-16LE encoding of consecutive 8-character slices of scrambled.
func SystemKey(controlSet int32, scrambled string) *Key {
	if len(scrambled) != 32 {
		panic(fmt.Sprintf("testutil: scrambled key must be 32 hex chars, got %d", len(scrambled)))
	}
	lsa := &Key{Name: "Lsa", Timestamp: FixtureTime}
	for i, name := range LsaKeys {
		lsa.Subkeys = append(lsa.Subkeys, &Key{
			Name:      name,
			Timestamp: FixtureTime,
			Class:     format.EncodeUTF16LE(scrambled[i*8 : (i+1)*8]),
		})
	}
	lsa.Values = []Value{{Name: "LmCompatibilityLevel", Type: types.REG_DWORD, Data: dword(3)}}

	controlSetName := fmt.Sprintf("ControlSet%03d", controlSet)
	return &Key{
		Name:      "ROOT",
		Timestamp: FixtureTime,
		Subkeys: []*Key{
			{
				Name:      controlSetName,
				Timestamp: FixtureTime,
				Subkeys: []*Key{{
					Name:      "Control",
					Timestamp: FixtureTime,
					Subkeys:   []*Key{lsa},
				}},
			},
			{
				Name:      "Select",
				Timestamp: FixtureTime,
				Values: []Value{
					{Name: "Current", Type: types.REG_DWORD, Data: dword(uint32(controlSet))},
					{Name: "Default", Type: types.REG_DWORD, Data: dword(uint32(controlSet))},
					{Name: "Failed", Type: types.REG_DWORD, Data: dword(0)},
					{Name: "LastKnownGood", Type: types.REG_DWORD, Data: dword(uint32(controlSet))},
				},
			},
		},
	}
}

func dword(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
