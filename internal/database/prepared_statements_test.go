package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insertColumns extrait la liste de colonnes d'un INSERT
func insertColumns(t *testing.T, cql string) []string {
	t.Helper()
	open := strings.Index(cql, "(")
	closing := strings.Index(cql, ")")
	require.Greater(t, closing, open)

	cols := strings.Split(cql[open+1:closing], ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

func TestInsertStatementsColumnsMatchPlaceholders(t *testing.T) {
	inserts := map[string]string{
		"users":           cqlInsertUser,
		"users_by_email":  cqlInsertUserByEmail,
		"returns":         cqlInsertReturn,
		"returns_by_user": cqlInsertReturnByUser,
	}

	for table, cql := range inserts {
		t.Run(table, func(t *testing.T) {
			cols := insertColumns(t, cql)
			assert.Equal(t, len(cols), strings.Count(cql, "?"),
				"colonnes et placeholders désalignés pour %s", table)
		})
	}
}

func TestReturnsTablesShareColumns(t *testing.T) {
	// les deux tables retours doivent recevoir les mêmes colonnes,
	// seule la clé de partition change
	base := insertColumns(t, cqlInsertReturn)
	byUser := insertColumns(t, cqlInsertReturnByUser)

	assert.ElementsMatch(t, base, byUser)
}

func TestSelectStatementsTakeOneKey(t *testing.T) {
	for name, cql := range map[string]string{
		"user par email":      cqlGetUserByEmail,
		"retour par id":       cqlGetReturnByID,
		"retours d'un client": cqlGetReturnsByUser,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 1, strings.Count(cql, "?"))
		})
	}
}
