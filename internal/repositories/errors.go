package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when no row matches
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key is already taken
	ErrDuplicate = errors.New("duplicate entry")
)

const mysqlDuplicateEntry = 1062

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// wrapWriteError maps unique key violations to ErrDuplicate
func wrapWriteError(action string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("failed to %s: %w", action, ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// marshalList encodes a list for a JSON column; nil becomes []
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// unmarshalList decodes a JSON column; NULL and empty become an empty list
func unmarshalList[T any](data []byte) ([]T, error) {
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
