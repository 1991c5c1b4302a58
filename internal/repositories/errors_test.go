package repositories

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driverValue keeps row fixtures readable
type driverValue = driver.Value

func TestWrapWriteError(t *testing.T) {
	dup := wrapWriteError("create client", &mysql.MySQLError{Number: 1062})
	assert.ErrorIs(t, dup, ErrDuplicate)
	assert.Contains(t, dup.Error(), "failed to create client")

	other := wrapWriteError("create client", &mysql.MySQLError{Number: 1452})
	assert.NotErrorIs(t, other, ErrDuplicate)

	plain := errors.New("connection reset")
	assert.ErrorIs(t, wrapWriteError("update review", plain), plain)
}

func TestMarshalList(t *testing.T) {
	data, err := marshalList[string](nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = marshalList([]string{"go", "mysql"})
	require.NoError(t, err)
	assert.JSONEq(t, `["go","mysql"]`, string(data))
}

func TestUnmarshalList(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []string
		wantErr  bool
	}{
		{name: "null column", input: nil, expected: []string{}},
		{name: "json null", input: []byte(`null`), expected: []string{}},
		{name: "values", input: []byte(`["a","b"]`), expected: []string{"a", "b"}},
		{name: "garbage", input: []byte(`{`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unmarshalList[string](tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
