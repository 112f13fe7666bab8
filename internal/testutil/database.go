package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a local MySQL on
// localhost:3306 with a database named 'lectern_test'; tests are skipped when
// it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/lectern_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "Lessons"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createLessonsTable := `
	CREATE TABLE IF NOT EXISTS Lessons (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		availableCapacity INT NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customerName VARCHAR(100) NOT NULL,
		customerPhone VARCHAR(30) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		lessonId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_lesson (lessonId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Lessons", createLessonsTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertLesson seeds one lesson row and returns its id.
func InsertLesson(t *testing.T, db *sql.DB, title, location string, price float64, capacity int) int {
	result, err := db.Exec(
		`INSERT INTO Lessons (title, location, price, availableCapacity) VALUES (?, ?, ?, ?)`,
		title, location, price, capacity,
	)
	if err != nil {
		t.Fatalf("failed to insert lesson: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get lesson id: %v", err)
	}

	return int(id)
}

// LessonCapacity reads a lesson's current capacity directly.
func LessonCapacity(t *testing.T, db *sql.DB, lessonID int) int {
	var capacity int
	err := db.QueryRow(`SELECT availableCapacity FROM Lessons WHERE id = ?`, lessonID).Scan(&capacity)
	if err != nil {
		t.Fatalf("failed to read lesson capacity: %v", err)
	}
	return capacity
}
