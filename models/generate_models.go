package models

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Schema tooling for the postgres backend.

	GENERATE_MODELS=true        migrate, print the column report, emit typed query helpers to ./generated
	GENERATE_COLUMN_REPORT=true print the column report only

The column report lists database columns that no model field maps to, which usually
means a column was renamed in Go but not in the database.
*/

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Artist{},
		&Project{},
		&Admin{},
		&ContactRequest{},
	}
}

// Migrate creates or alters the tables for every model.
func Migrate(db *gorm.DB) error {
	return db.Session(&gorm.Session{SkipDefaultTransaction: true}).AutoMigrate(All()...)
}

func GenerateModels(db *gorm.DB) error {
	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Info,
			Colorful: true,
		},
	)
	db = db.Session(&gorm.Session{Logger: verbose, SkipDefaultTransaction: true})

	fmt.Println("Migrating models...")
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	if _, err := GenerateColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Artist{}, Project{}, Admin{}, ContactRequest{})
	g.Execute()

	fmt.Println("Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport prints and returns the database columns that no model
// field maps to. Tables whose columns are all mapped are left out of the result.
func GenerateColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	report := make(map[string][]string)
	total := 0
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			fmt.Printf("--- %s: table does not exist yet\n", table)
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", table, err)
		}
		columns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			columns = append(columns, ct.Name())
		}

		missing := recordMismatches(report, table, stmt.Schema.DBNames, columns)
		total += len(missing)

		if len(missing) == 0 {
			fmt.Printf("--- %s: all columns mapped\n", table)
			continue
		}
		fmt.Printf("--- %s: %d unmapped columns\n", table, len(missing))
		for _, col := range missing {
			fmt.Printf("  - %s\n", col)
		}
	}

	if total == 0 {
		fmt.Println("No column mismatches found")
	} else {
		fmt.Printf("Total unmapped columns: %d\n", total)
	}
	return report, nil
}

// recordMismatches stores the sorted columns of table missing from mapped, only
// when there is at least one.
func recordMismatches(report map[string][]string, table string, mapped, columns []string) []string {
	known := make(map[string]bool, len(mapped))
	for _, name := range mapped {
		known[name] = true
	}

	var missing []string
	for _, col := range columns {
		if !known[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	report[table] = missing
	return missing
}
