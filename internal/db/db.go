package db

import (
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteDriverName is go-sqlite3 with a REGEXP function, which SQLite lacks out of the box.
const sqliteDriverName = "sqlite3_regexp"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("regexp", matchRegexp, true)
		},
	})
}

// matchRegexp backs "X REGEXP Y", which SQLite evaluates as regexp(Y, X).
func matchRegexp(pattern, s string) (bool, error) {
	return regexp.MatchString(pattern, s)
}

// Open connects to the given driver ("postgres", "mysql" or "sqlite").
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		if !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on&_busy_timeout=5000"
		}
		dialector = sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	cfg := &gorm.Config{TranslateError: true}
	if !debug {
		cfg.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	log.Printf("Database connection established (%s)", driver)
	return db, nil
}

// RegexpMatch returns a case-insensitive regular expression condition on
// column against the named parameter @name, together with the pattern value
// to bind for the current dialect.
func RegexpMatch(db *gorm.DB, column, name, pattern string) (string, string) {
	switch db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("%s ~* @%s", column, name), pattern
	case "mysql":
		return fmt.Sprintf("REGEXP_LIKE(%s, @%s, 'i')", column, name), pattern
	}
	return fmt.Sprintf("%s REGEXP @%s", column, name), "(?i)" + pattern
}

// Concat joins SQL expressions with the dialect's string concatenation.
func Concat(db *gorm.DB, exprs ...string) string {
	if db.Dialector.Name() == "mysql" {
		return "CONCAT(" + strings.Join(exprs, ", ") + ")"
	}
	return "(" + strings.Join(exprs, " || ") + ")"
}
