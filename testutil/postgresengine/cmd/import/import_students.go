package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/testutil/postgresengine/config"
)

var (
	ErrMissingColumn   = errors.New("missing column in CSV header")
	ErrEmptyEnrollment = errors.New("empty enrollment number")
)

var studentColumns = []string{"enrollment_no", "first_name", "last_name", "semester"}

func main() {
	csvPath := flag.String("csv", "testutil/postgresengine/fixtures/students.csv", "CSV file with the columns enrollment_no,first_name,last_name,semester")
	replace := flag.Bool("replace", false, "Remove all existing student records before the import")
	flag.Parse()

	if err := ImportStudents(*csvPath, *replace); err != nil {
		log.Fatalf("Error importing students: %v", err)
	}
}

// ImportStudents loads student records from a CSV file into the test database in one transaction.
func ImportStudents(csvPath string, replace bool) error {
	startTime := time.Now()

	fmt.Println("🚀 Starting student import")
	fmt.Printf("📄 Source: %s\n", csvPath)
	fmt.Println()

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	fmt.Printf("📦\tParsing CSV...")
	students, err := ParseStudentsCSV(file)
	if err != nil {
		return err
	}
	fmt.Printf(" ✅ %d students\n", len(students))

	rows, err := studentRows(students)
	if err != nil {
		return err
	}

	ctx := context.Background()

	fmt.Printf("🔗\tConnecting to database...")
	connPool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolSingleConfig())
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer connPool.Close()
	fmt.Println(" ✅")

	tx, err := connPool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Will be ignored if already committed
	}()

	if replace {
		fmt.Printf("🧹\tClearing existing student records...")
		if _, err = tx.Exec(ctx, "TRUNCATE TABLE "+string(shell.CollectionStudentRecord)); err != nil {
			return fmt.Errorf("failed to truncate table: %w", err)
		}
		fmt.Println(" ✅")
	}

	fmt.Printf("📥\tCopying student records...")
	copyStart := time.Now()
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{string(shell.CollectionStudentRecord)},
		[]string{"id", "document"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy student records: %w", err)
	}
	fmt.Printf(" ✅ %v\n", time.Since(copyStart).Round(time.Millisecond))

	fmt.Printf("💾\tCommitting transaction...")
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	fmt.Println(" ✅")

	var count int
	err = connPool.QueryRow(ctx, "SELECT count(*) FROM "+string(shell.CollectionStudentRecord)).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to verify import: %w", err)
	}

	fmt.Println()
	fmt.Printf("Import completed! 🎉\n")
	fmt.Printf("Student records in the table: %d 📊\n", count)
	fmt.Printf("Total time: %v ⏱️\n", time.Since(startTime).Round(time.Millisecond))

	return nil
}

// ParseStudentsCSV reads student records; the header row decides the column order.
func ParseStudentsCSV(r io.Reader) ([]core.StudentRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.ToLower(strings.TrimSpace(column))] = i
	}

	for _, column := range studentColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}

	students := make([]core.StudentRecord, 0)
	for line := 2; ; line++ {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, readErr)
		}

		student := core.StudentRecord{
			EnrollmentNo: strings.TrimSpace(record[index["enrollment_no"]]),
			FirstName:    strings.TrimSpace(record[index["first_name"]]),
			LastName:     strings.TrimSpace(record[index["last_name"]]),
			Semester:     strings.TrimSpace(record[index["semester"]]),
		}

		if student.EnrollmentNo == "" {
			return nil, fmt.Errorf("%w in CSV line %d", ErrEmptyEnrollment, line)
		}

		students = append(students, student)
	}

	return students, nil
}

func studentRows(students []core.StudentRecord) ([][]any, error) {
	rows := make([][]any, 0, len(students))

	for _, student := range students {
		document, err := shell.StudentRecordToDocument(student)
		if err != nil {
			return nil, fmt.Errorf("failed to encode student %s: %w", student.EnrollmentNo, err)
		}

		rows = append(rows, []any{document.ID.String(), string(document.PayloadJSON)})
	}

	return rows, nil
}
