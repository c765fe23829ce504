package infokey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pardi/vtklegacy/diag"
	"github.com/pardi/vtklegacy/token"
)

func TestDeserialize_ScalarDouble(t *testing.T) {
	RegisterInformationKey("TestDoubleKey", "unit-test", Double)

	tok := token.New(strings.NewReader("NAME TestDoubleKey LOCATION unit-test DATA 3.5\n"))
	set, err := Deserialize(tok, 1, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, set.Entries(), 1)
	assert.InDelta(t, 3.5, set.Entries()[0].Double, 1e-9)
}

func TestDeserialize_IntVector(t *testing.T) {
	RegisterInformationKey("TestIntVec", "unit-test", IntVector)

	tok := token.New(strings.NewReader("NAME TestIntVec LOCATION unit-test DATA 3 1 2 3\n"))
	set, err := Deserialize(tok, 1, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, set.Entries(), 1)
	assert.Equal(t, []int64{1, 2, 3}, set.Entries()[0].Int64s)
}

func TestDeserialize_EmptyVector(t *testing.T) {
	RegisterInformationKey("TestEmptyVec", "unit-test", DoubleVector)

	tok := token.New(strings.NewReader("NAME TestEmptyVec LOCATION unit-test DATA 0\n"))
	set, err := Deserialize(tok, 1, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, set.Entries(), 1)
	assert.Empty(t, set.Entries()[0].Doubles)
}

func TestDeserialize_String(t *testing.T) {
	RegisterInformationKey("TestStringKey", "unit-test", String)

	tok := token.New(strings.NewReader("NAME TestStringKey LOCATION unit-test DATA my%20value\n"))
	set, err := Deserialize(tok, 1, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, set.Entries(), 1)
	assert.Equal(t, "my value", set.Entries()[0].Str)
}

func TestDeserialize_StringVector(t *testing.T) {
	RegisterInformationKey("TestStringVec", "unit-test", StringVector)

	tok := token.New(strings.NewReader("NAME TestStringVec LOCATION unit-test DATA 2 a%20b c\n"))
	set, err := Deserialize(tok, 1, diag.New(nil))
	require.NoError(t, err)
	require.Len(t, set.Entries(), 1)
	assert.Equal(t, []string{"a b", "c"}, set.Entries()[0].Strs)
}

func TestDeserialize_UnknownKeyIsNonFatal(t *testing.T) {
	tok := token.New(strings.NewReader("NAME SomeUnknownKey LOCATION nowhere DATA 1 2 3\n"))
	dlog := diag.New(nil)
	set, err := Deserialize(tok, 1, dlog)
	require.NoError(t, err)
	assert.Empty(t, set.Entries())
	assert.NotEmpty(t, dlog.Recent())
}

func TestDeserialize_WellKnownKeyPrePopulated(t *testing.T) {
	_, ok := lookup("FIELD_ASSOCIATION", "vtkDataObject")
	assert.True(t, ok)
}
