package sqlite

// Schema DDL. Every statement is create-if-absent so Attach is idempotent
// against an existing database.
const (
	createTodos = `CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT,
    completed INTEGER
);`
)

// Connection pragmas applied on Attach.
const (
	pragmaBusyTimeout = `PRAGMA busy_timeout = 5000;`
	pragmaJournalMode = `PRAGMA journal_mode = WAL;`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createTodos,
}

// Snapshot queries.
const (
	queryTableExists = `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'todos'`
	queryAllTodos    = `SELECT id, text, completed FROM todos ORDER BY id`
	execClearTodos   = `DELETE FROM todos`
	execInsertTodo   = `INSERT INTO todos (text, completed) VALUES (?, ?)`
)
