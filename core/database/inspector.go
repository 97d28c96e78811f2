package database

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Column is a live column definition, normalized to lower case.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// tableNamePattern limits inspected names to plain identifiers, since they
// are interpolated into PRAGMA/SHOW statements.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// mysqlColumn matches one row of SHOW COLUMNS.
type mysqlColumn struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

// sqliteColumn matches one row of PRAGMA table_info.
type sqliteColumn struct {
	Cid        int
	Name       string
	Type       string
	Notnull    int
	DefaultVal *string `gorm:"column:dflt_value"`
	Pk         int
}

// TableColumns lists the columns of a table. An unknown table yields no
// columns and no error.
func TableColumns(db *gorm.DB, table string) ([]Column, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if db.Dialector.Name() == DriverSQLite {
		return sqliteColumns(db, table)
	}
	return mysqlColumns(db, table)
}

func sqliteColumns(db *gorm.DB, table string) ([]Column, error) {
	var rows []sqliteColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	columns := make([]Column, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, Column{
			Name:       strings.ToLower(r.Name),
			Type:       strings.ToLower(r.Type),
			Nullable:   r.Notnull == 0,
			PrimaryKey: r.Pk > 0,
		})
	}
	return columns, nil
}

// mysqlColumns uses SHOW COLUMNS to keep exact type strings such as
// varchar(255).
func mysqlColumns(db *gorm.DB, table string) ([]Column, error) {
	var rows []mysqlColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	columns := make([]Column, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, Column{
			Name:       strings.ToLower(r.Field),
			Type:       strings.ToLower(r.Type),
			Nullable:   strings.EqualFold(r.Null, "YES"),
			PrimaryKey: strings.EqualFold(r.Key, "PRI"),
		})
	}
	return columns, nil
}
