package warehouse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/claims_analyzer/dataset"
)

func loadTestTable(t *testing.T) *dataset.Table {
	t.Helper()
	csv := "CL_NO,CLAIM_STATUS,PAYDATE,APPROVED\nC001,Accept,2023-01-15,90\nC002,Reject,2023-01-20,\n"
	path := filepath.Join(t.TempDir(), "claims.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))
	table, err := dataset.LoadTable(context.Background(), path)
	require.NoError(t, err)
	return table
}

func TestTableName(t *testing.T) {
	table := loadTestTable(t)

	name := TableName(table, "claims.csv")
	assert.Equal(t, "CL_NO_CLAIM_STATUS_PAYDATE_"+dataset.MD5String("claims.csv")[:6], name)

	// same source file, same name
	assert.Equal(t, name, TableName(table, "claims.csv"))
	assert.NotEqual(t, name, TableName(table, "other.csv"))
}

func TestColumnType(t *testing.T) {
	table := loadTestTable(t)

	status, _ := table.Column("CLAIM_STATUS")
	assert.Equal(t, "String", columnType(status))

	pay, _ := table.Column("PAYDATE")
	assert.Equal(t, "DateTime64", columnType(pay))

	approved, _ := table.Column("APPROVED")
	assert.Equal(t, "Float64", columnType(approved))

	year, _ := table.Column("YEAR")
	assert.Equal(t, "Int64", columnType(year))
}

func TestHasNulls(t *testing.T) {
	table := loadTestTable(t)

	approved, _ := table.Column("APPROVED")
	assert.True(t, hasNulls(approved))

	status, _ := table.Column("CLAIM_STATUS")
	assert.False(t, hasNulls(status))
}
