package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorListValueEmptyIsNull(t *testing.T) {
	v, err := ErrorList(nil).Value()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestErrorListScan(t *testing.T) {
	var e ErrorList
	require.NoError(t, e.Scan([]byte(`["Row 1: invalid budget","Row 4: could not classify row"]`)))
	require.Equal(t, ErrorList{"Row 1: invalid budget", "Row 4: could not classify row"}, e)

	require.NoError(t, e.Scan(nil))
	require.Nil(t, e)

	require.Error(t, e.Scan(42))
}
