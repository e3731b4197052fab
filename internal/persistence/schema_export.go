package persistence

// SPDX-License-Identifier: GPL-3.0-or-later

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

var (
	// Tables and/or indices to skip when exporting the schema.
	// Anything that is *not* to be seen by sqlc should be listed here.
	schemaSkips = map[sqliteSchema]bool{
		// Goose manages its own versioning table. SQLC should ignore its existence.
		{Type: "table", Name: "goose_db_version"}: true,
	}

	tableNameDequoter = regexp.MustCompile("^(?:CREATE TABLE )(\"([^\"]+)\")")
)

type sqliteSchema struct {
	Type      string
	Name      string
	TableName string
	RootPage  int
	SQL       sql.NullString
}

// ExportSchema returns the SQL statements that create the current schema, in
// a form suitable for sqlc.
func (db *DB) ExportSchema(ctx context.Context) (string, error) {
	rows, err := db.sqlDB.QueryContext(ctx, "select * from sqlite_schema order by type desc, name asc")
	if err != nil {
		return "", fmt.Errorf("querying schema: %w", err)
	}
	defer rows.Close()

	sqlBuilder := strings.Builder{}
	for rows.Next() {
		var data sqliteSchema
		if err := rows.Scan(
			&data.Type,
			&data.Name,
			&data.TableName,
			&data.RootPage,
			&data.SQL,
		); err != nil {
			return "", err
		}
		if strings.HasPrefix(data.Name, "sqlite_") {
			continue
		}
		if schemaSkips[sqliteSchema{Type: data.Type, Name: data.Name}] {
			continue
		}
		if !data.SQL.Valid {
			continue
		}

		sql := tableNameDequoter.ReplaceAllString(data.SQL.String, "CREATE TABLE $2")
		sqlBuilder.WriteString(sql)
		sqlBuilder.WriteString(";\n")
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return sqlBuilder.String(), nil
}
