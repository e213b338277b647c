package main

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ErrNoConfig is returned for every query against a logical database that has
// no manual configuration and for which discovery found nothing. Discovery is
// not retried; fixing the deployment requires a restart.
var ErrNoConfig = errors.New("no database configuration")

// Registry owns one lazily-opened MySQL handle per logical database.
// Connections are reused for the lifetime of the process and never
// re-established; a dropped connection surfaces as a query error.
type Registry struct {
	mu       sync.Mutex
	manual   CredentialSet
	resolved CredentialSet
	attempts []string
	tried    bool
	conns    map[string]*sql.DB

	// discover is swappable in tests; defaults to filesystem discovery.
	discover func() (CredentialSet, []string)
}

// NewRegistry builds a registry. A non-nil manual credential set takes
// precedence and disables filesystem discovery entirely.
func NewRegistry(manual CredentialSet) *Registry {
	return &Registry{
		manual:   manual,
		conns:    map[string]*sql.DB{},
		discover: discoverCredentials,
	}
}

// credentials resolves the credential set, running discovery at most once
// even under concurrent first use.
func (r *Registry) credentials() CredentialSet {
	if r.manual != nil {
		return r.manual
	}
	if !r.tried {
		r.resolved, r.attempts = r.discover()
		if r.resolved != nil {
			r.attempts = append(r.attempts, "using auto-discovered config")
		}
		r.tried = true
	}
	return r.resolved
}

// Conn returns the shared handle for a logical database, opening it on first
// use.
func (r *Registry) Conn(logical string) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.conns[logical]; ok {
		return db, nil
	}

	creds := r.credentials()
	cred, ok := creds[logical]
	if !ok || cred == nil {
		return nil, fmt.Errorf("%w for database %s", ErrNoConfig, logical)
	}

	dsn := mysqlDSN(cred)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	r.conns[logical] = db
	return db, nil
}

func mysqlDSN(c *Credential) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Select runs a parameterized query and returns every row as a column → value
// map. The game schema varies per deployment, so callers that read optional
// columns use this instead of positional scans.
func (r *Registry) Select(logical string, query string, args ...interface{}) ([]map[string]interface{}, error) {
	db, err := r.Conn(logical)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		targets := make([]interface{}, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SelectOne runs a parameterized query and returns the first row, or nil when
// the query matches nothing.
func (r *Registry) SelectOne(logical string, query string, args ...interface{}) (map[string]interface{}, error) {
	rows, err := r.Select(logical, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Execute runs a statement and reports the affected row count.
func (r *Registry) Execute(logical string, query string, args ...interface{}) (int64, error) {
	db, err := r.Conn(logical)
	if err != nil {
		return 0, err
	}
	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// TableExists probes whether a table is present. Best-effort: any error,
// including a missing configuration, reads as "no".
func (r *Registry) TableExists(logical string, table string) bool {
	db, err := r.Conn(logical)
	if err != nil {
		return false
	}
	var one int
	err = db.QueryRow("SELECT 1 FROM `" + table + "` LIMIT 1").Scan(&one)
	return err == nil || err == sql.ErrNoRows
}

// Columns lists a table's column names, empty on any error.
func (r *Registry) Columns(logical string, table string) []string {
	db, err := r.Conn(logical)
	if err != nil {
		return nil
	}
	rows, err := db.Query("DESCRIBE `" + table + "`")
	if err != nil {
		return nil
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var field, colType string
		var null, key, extra sql.NullString
		var def sql.NullString
		if err := rows.Scan(&field, &colType, &null, &key, &def, &extra); err != nil {
			return nil
		}
		columns = append(columns, field)
	}
	return columns
}

// Connected reports whether the account database answers a ping.
func (r *Registry) Connected() bool {
	db, err := r.Conn("account")
	if err != nil {
		return false
	}
	return db.Ping() == nil
}

// DiscoveryLog returns the trail left by credential resolution.
func (r *Registry) DiscoveryLog() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.manual != nil {
		return []string{"using manual configuration"}
	}
	return r.attempts
}

// RedactedConfig describes the resolved credentials with passwords hidden,
// for the status endpoint.
func (r *Registry) RedactedConfig() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds := r.credentials()
	safe := map[string]string{}
	for logical, cred := range creds {
		safe[logical] = cred.redacted()
	}
	return safe
}
