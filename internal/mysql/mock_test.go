package mysql

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, query string, args ...any) error {
	called := m.Called(ctx, query, args)
	return called.Error(0)
}

func (m *mockDB) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	called := m.Called(ctx, query, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(Rows), called.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, query string, args ...any) Row {
	called := m.Called(ctx, query, args)
	return called.Get(0).(Row)
}

// ---------- Mock Row ----------

type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// stringRow returns a Row that scans a single string value.
func stringRow(value string) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = value
		return nil
	}}
}

// intRow returns a Row that scans a single int value.
func intRow(value int) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int)) = value
		return nil
	}}
}

// errRow returns a Row whose Scan fails.
func errRow(err error) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error { return err }}
}

// ---------- Mock Rows ----------

// mockRows yields one string value per row.
type mockRows struct {
	values    []string
	callIndex int
	err       error
}

func newMockRows(values ...string) *mockRows {
	return &mockRows{values: values}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.values)
}

func (m *mockRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = m.values[m.callIndex]
	m.callIndex++
	return nil
}

func (m *mockRows) Err() error   { return m.err }
func (m *mockRows) Close() error { return nil }
