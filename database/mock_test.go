package database

import (
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

// newMock troca o pool global por um mock durante o teste
func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := DB
	DB = mock
	t.Cleanup(func() {
		DB = prev
		mock.Close()
	})
	return mock
}

// anyArgs casa n argumentos quaisquer, para inserts com muitas colunas
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
