// Package warehouse exports ingested datasets to ClickHouse for ad-hoc
// SQL exploration. ClickHouse is reached over its MySQL protocol port.
package warehouse

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/claims_analyzer/dataset"
)

const insertBatchSize = 5000

// Open connects to ClickHouse via the MySQL wire protocol.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

// TableName derives a warehouse table name from the leading columns plus
// a short hash of the source filename.
func TableName(t *dataset.Table, filename string) string {
	columns := []string{}
	for _, c := range t.Columns() {
		name := dataset.SanitizeIdentifier(c.Name)
		if name == "" {
			continue
		}
		columns = append(columns, name)
		if len(columns) == 3 {
			break
		}
	}
	return strings.Join(columns, "_") + "_" + dataset.MD5String(filename)[:6]
}

func columnType(c *dataset.Column) string {
	switch c.Kind {
	case dataset.KindNumeric:
		if c.DType == "Int64" {
			return "Int64"
		}
		return "Float64"
	case dataset.KindDateTime:
		return "DateTime64"
	default:
		return "String"
	}
}

// Export creates a warehouse table matching the dataset's schema and
// streams all rows into it in batched CSV inserts. An existing table of
// the same name is replaced.
func Export(db *gorm.DB, tableName string, t *dataset.Table) error {
	fields := []string{}
	hasID := false
	for _, c := range t.Columns() {
		name := dataset.SanitizeIdentifier(c.Name)
		if name == "id" {
			hasID = true
		}
		nullable := ""
		if hasNulls(c) {
			nullable = " NULL "
		}
		fields = append(fields, fmt.Sprintf("%s %s %s", name, columnType(c), nullable))
	}

	createSQL := `CREATE TABLE ` + tableName + ` (id UInt64,`
	if hasID {
		createSQL = `CREATE TABLE ` + tableName + ` (`
	}
	createSQL += strings.Join(fields, ",\n") +
		") ENGINE = ReplacingMergeTree PRIMARY KEY (id) SETTINGS index_granularity = 8192"

	if tx := db.Exec("DROP TABLE IF EXISTS " + tableName); tx.Error != nil {
		return tx.Error
	}
	if tx := db.Exec(createSQL); tx.Error != nil {
		return fmt.Errorf("create table: %w", tx.Error)
	}

	b := bytes.NewBufferString("")
	csvWriter := csv.NewWriter(b)
	flush := func() error {
		csvWriter.Flush()
		if b.Len() == 0 {
			return nil
		}
		sql := fmt.Sprintf("INSERT INTO "+tableName+" FORMAT CSV \n%s", b.String())
		b.Reset()
		if tx := db.Exec(sql); tx.Error != nil {
			return tx.Error
		}
		return nil
	}

	columns := t.Columns()
	for row := 0; row < t.NumRows(); row++ {
		record := make([]string, 0, len(columns)+1)
		if !hasID {
			record = append(record, strconv.Itoa(row))
		}
		for _, c := range columns {
			value := c.Display(row)
			switch c.Kind {
			case dataset.KindCategorical:
				value = "'" + dataset.SanitizeIdentifier(value) + "'"
			case dataset.KindDateTime:
				value = "'" + value + "'"
			}
			record = append(record, value)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
		if row%insertBatchSize == insertBatchSize-1 {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	log.Printf("exported %d rows to %s", t.NumRows(), tableName)
	return nil
}

func hasNulls(c *dataset.Column) bool {
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			return true
		}
	}
	return false
}
