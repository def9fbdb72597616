package blr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fdbgo/fbwire/common"
	"github.com/fdbgo/fbwire/xsqlda"
)

func coerced(t *testing.T, sqltype, scale, dataLength int16) xsqlda.ColDesc {
	t.Helper()
	d := xsqlda.ColDesc{Sqltype: sqltype, Scale: scale, DataLength: dataLength}
	require.NoError(t, d.Coerce())
	return d
}

// Scenario: Text(10), Integer, Float, Timestamp must encode to
// this exact byte-for-byte sequence.
func TestBLRForRoundTrip(t *testing.T) {
	descs := []xsqlda.ColDesc{
		coerced(t, common.SqlTypeVarying, 0, 10),
		coerced(t, common.SqlTypeLong, 0, 4),
		coerced(t, common.SqlTypeDouble, 0, 8),
		coerced(t, common.SqlTypeTimestamp, 0, 8),
	}

	got, err := BLRFor(descs)
	require.NoError(t, err)

	want := []byte{
		5, 2, 4, 0, // version5, begin, message, index 0
		8, 0, // message length = 2 * 4 columns
		37, 10, 0, // varying, data_length=10
		7, 0, // null-indicator short
		45, 0, // int64, scale 0
		7, 0,
		27, // double
		7, 0,
		35, // timestamp
		7, 0,
		255, 76, // end, eoc
	}
	require.Equal(t, want, got)
}

func TestBLRForMessageLengthIsTwiceColumnCount(t *testing.T) {
	descs := []xsqlda.ColDesc{
		coerced(t, common.SqlTypeShort, 0, 2),
		coerced(t, common.SqlTypeShort, 0, 2),
		coerced(t, common.SqlTypeShort, 0, 2),
	}
	got, err := BLRFor(descs)
	require.NoError(t, err)
	require.Len(t, got, len(got))
	msgLen := uint16(got[4]) | uint16(got[5])<<8
	require.EqualValues(t, 6, msgLen)
}

func TestBLRForEmptyDescriptorList(t *testing.T) {
	got, err := BLRFor(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{5, 2, 4, 0, 0, 0, 255, 76}, got)
}

func TestBLRForIsDeterministic(t *testing.T) {
	descs := []xsqlda.ColDesc{
		coerced(t, common.SqlTypeVarying, 0, 16),
		coerced(t, common.SqlTypeInt64, 0, 8),
	}
	a, err := BLRFor(descs)
	require.NoError(t, err)
	b, err := BLRFor(descs)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBLRForRejectsUncoercedDescriptor(t *testing.T) {
	// A descriptor whose Sqltype was never run through Coerce does not
	// decode to a lattice category.
	bad := xsqlda.ColDesc{Sqltype: common.SqlTypeVarying}
	_, err := BLRFor([]xsqlda.ColDesc{bad})
	require.Error(t, err)
}
