package prepareinfo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fdbgo/fbwire/common"
	"github.com/fdbgo/fbwire/fberrors"
)

// taggedU32 builds the "0x04 0x00 <u32 le>" framing shared by several
// item codes in these fixtures.
func taggedU32(code byte, v uint32) []byte {
	return []byte{code, 0x04, 0x00, byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func taggedString(code byte, s string) []byte {
	n := len(s)
	out := []byte{code, byte(n), byte(n >> 8)}
	return append(out, s...)
}

func prologueBytes(stmtType uint32) []byte {
	return taggedU32(common.IscInfoSqlStmtType, stmtType)
}

func concat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// Scenario: a bare 7-byte prologue with no column block at all.
func TestParsePrepareInfoEmptySelect(t *testing.T) {
	buf := []byte{0x15, 0x04, 0x00, 0x01, 0x00, 0x00, 0x00}

	info, err := ParsePrepareInfo(buf)
	require.NoError(t, err)
	require.Equal(t, common.StmtTypeSelect, info.StmtType)
	require.Empty(t, info.Descriptors)
	require.Equal(t, 0, info.ParamCount)
	require.False(t, info.Truncated)
}

// Scenario: stmt_type=Select, one text column at seq 1, described
// by type/length/field name, closed by describe_end then isc_info_end.
func TestParsePrepareInfoOneTextColumn(t *testing.T) {
	buf := concat(
		prologueBytes(1),
		[]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars, 0x04, 0x00, 0x01, 0x00, 0x00, 0x00},
		[]byte{common.IscInfoSqlSelect},
		taggedU32(common.IscInfoSqlSqldaSeq, 1),
		taggedU32(common.IscInfoSqlType, uint32(common.SqlTypeVarying)),
		taggedU32(common.IscInfoSqlLength, 32),
		taggedString(common.IscInfoSqlField, "NAME"),
		[]byte{common.IscInfoSqlDescribeEnd},
		[]byte{common.IscInfoEnd},
	)

	info, err := ParsePrepareInfo(buf)
	require.NoError(t, err)
	require.False(t, info.Truncated)
	require.Len(t, info.Descriptors, 1)

	d := info.Descriptors[0]
	require.Equal(t, "NAME", d.FieldName)
	require.EqualValues(t, 32, d.DataLength)

	require.NoError(t, d.Coerce())
	require.EqualValues(t, 32, d.DataLength)
	require.Equal(t, int16(1), d.Sqltype) // Text ordinal (0) * 2 + 1
}

// Scenario: the response is cut off with isc_info_truncated
// after only one of a declared two columns was described. This must not
// be an error: Truncated is how the caller finds out.
func TestParsePrepareInfoTruncated(t *testing.T) {
	buf := concat(
		prologueBytes(1),
		[]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars, 0x04, 0x00, 0x02, 0x00, 0x00, 0x00},
		taggedU32(common.IscInfoSqlSqldaSeq, 1),
		taggedU32(common.IscInfoSqlType, uint32(common.SqlTypeVarying)),
		[]byte{common.IscInfoTruncated},
	)

	info, err := ParsePrepareInfo(buf)
	require.NoError(t, err)
	require.True(t, info.Truncated)
	require.Len(t, info.Descriptors, 1)
}

func TestParsePrepareInfoParamsAreCountedNotDescribed(t *testing.T) {
	buf := concat(
		prologueBytes(2), // Insert
		[]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00},
		[]byte{common.IscInfoSqlBind},
		taggedU32(common.IscInfoSqlDescribeVars, 3),
		taggedU32(common.IscInfoSqlSqldaSeq, 1),
		taggedU32(common.IscInfoSqlType, uint32(common.SqlTypeLong)),
		[]byte{common.IscInfoSqlDescribeEnd},
		[]byte{common.IscInfoEnd},
	)

	info, err := ParsePrepareInfo(buf)
	require.NoError(t, err)
	require.Equal(t, common.StmtTypeInsert, info.StmtType)
	require.Equal(t, 3, info.ParamCount)
	require.Empty(t, info.Descriptors, "param-mode field writes are counted but not materialized as descriptors")
}

func TestParsePrepareInfoShortBufferIsInvalidResponse(t *testing.T) {
	_, err := ParsePrepareInfo([]byte{0x15, 0x04, 0x00, 0x01})
	require.Error(t, err)
	require.True(t, fberrors.Is(err, fberrors.KindInvalidResponse))
}

func TestParsePrepareInfoBadProloguePrefix(t *testing.T) {
	buf := []byte{0x01, 0x04, 0x00, 0x01, 0x00, 0x00, 0x00}
	_, err := ParsePrepareInfo(buf)
	require.Error(t, err)
	require.True(t, fberrors.Is(err, fberrors.KindInvalidResponse))
}

func TestParsePrepareInfoUnknownStmtType(t *testing.T) {
	buf := prologueBytes(9999)
	_, err := ParsePrepareInfo(buf)
	require.Error(t, err)
	require.True(t, fberrors.Is(err, fberrors.KindInvalidResponse))
}

func TestParsePrepareInfoUnknownItemCode(t *testing.T) {
	buf := concat(
		prologueBytes(1),
		[]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00},
		[]byte{0x7F}, // not a recognised item code
	)
	_, err := ParsePrepareInfo(buf)
	require.Error(t, err)
	require.True(t, fberrors.Is(err, fberrors.KindInvalidResponse))
}

func TestParsePrepareInfoItemStreamEndsWithoutTerminator(t *testing.T) {
	buf := concat(
		prologueBytes(1),
		[]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars, 0x04, 0x00, 0x01, 0x00, 0x00, 0x00},
		taggedU32(common.IscInfoSqlSqldaSeq, 1),
	)
	_, err := ParsePrepareInfo(buf)
	require.Error(t, err)
	require.True(t, fberrors.Is(err, fberrors.KindInvalidResponse))
}

func TestParsePrepareInfoFieldBeforeSqldaSeqIsRejected(t *testing.T) {
	buf := concat(
		prologueBytes(1),
		[]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars, 0x04, 0x00, 0x01, 0x00, 0x00, 0x00},
		taggedU32(common.IscInfoSqlType, uint32(common.SqlTypeLong)), // no sqlda_seq yet
	)
	_, err := ParsePrepareInfo(buf)
	require.Error(t, err)
	require.True(t, fberrors.Is(err, fberrors.KindInvalidResponse))
}
