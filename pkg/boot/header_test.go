package boot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderAddrs(t *testing.T) {
	for _, base := range []Addr{0, 4, 0x100, 0x08000000, 0x20000000, 0xfffffff0, 0xfffffffb} {
		sp, entry := HeaderAddrs(base)
		require.Equal(t, base, sp)
		require.Equal(t, base+4, entry)
		require.Equal(t, uint32(4), uint32(entry-sp))
	}
	sp, entry := HeaderAddrs(0xfffffffc)
	require.Equal(t, Addr(0xfffffffc), sp)
	require.Equal(t, Addr(0), entry)
}

func TestReadHeader(t *testing.T) {
	mem := &bufMemory{
		base: 0x1000,
		data: []byte{0x00, 0x10, 0x00, 0x20, 0x01, 0x02, 0x00, 0x08, 0xaa, 0xbb},
	}
	h := ReadHeader(mem, 0x1000)
	require.Equal(t, uint32(0x20001000), h.SP)
	require.Equal(t, uint32(0x08000201), h.Entry)
	require.Equal(t, "sp=0x20001000 entry=0x08000201", h.String())

	h = ReadHeader(mem, 0x1002)
	require.Equal(t, uint32(0x02012000), h.SP)
	require.Equal(t, uint32(0xbbaa0800), h.Entry)
}

func TestReadHeaderBytePatterns(t *testing.T) {
	for b := 0; b < 256; b += 17 {
		data := make([]byte, 8)
		for i := range data {
			data[i] = byte(b + i)
		}
		h := ReadHeader(&bufMemory{base: 0x400, data: data}, 0x400)
		require.Equal(t, uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16|uint32(data[3])<<24, h.SP)
		require.Equal(t, uint32(data[4])|uint32(data[5])<<8|uint32(data[6])<<16|uint32(data[7])<<24, h.Entry)
	}
}

func TestHeaderCheck(t *testing.T) {
	testCases := []struct {
		name       string
		header     Header
		violations []string
	}{
		{"valid", Header{SP: 0x20001000, Entry: 0x08000201}, nil},
		{"zero sp", Header{SP: 0, Entry: 0x08000201}, []string{"invalid stack pointer 0x00000000"}},
		{"unaligned sp", Header{SP: 0x20001002, Entry: 0x08000201}, []string{"stack pointer 0x20001002 not word aligned"}},
		{"arm mode entry", Header{SP: 0x20001000, Entry: 0x08000200}, []string{"entry address 0x08000200 missing Thumb bit"}},
		{"erased", Header{SP: 0xffffffff, Entry: 0xffffffff}, []string{
			"invalid stack pointer 0xffffffff",
			"entry address reads as erased flash",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.header.Check()
			if tc.violations == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			herr, ok := err.(*HeaderError)
			require.True(t, ok)
			require.Equal(t, tc.header, herr.Header)
			require.Equal(t, tc.violations, herr.Violations)
		})
	}
}

func TestHeaderErrorMessage(t *testing.T) {
	err := Header{SP: 2, Entry: 4}.Check()
	require.EqualError(t, err,
		"bad header (sp=0x00000002 entry=0x00000004): stack pointer 0x00000002 not word aligned; entry address 0x00000004 missing Thumb bit")
}
