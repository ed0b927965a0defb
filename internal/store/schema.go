package store

// Schema DDL for the consolidated SQLite store. One table per entity kind;
// list-valued and snapshot fields are stored as JSON text. Insertion order
// is preserved through rowid.
const (
	createBooks = `CREATE TABLE IF NOT EXISTS books (
    isbn TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    year INTEGER NOT NULL,
    genres TEXT NOT NULL,
    available INTEGER NOT NULL
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    card_number TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL
);`

	createLoans = `CREATE TABLE IF NOT EXISTS loans (
    loan_id TEXT PRIMARY KEY,
    book TEXT NOT NULL,
    user TEXT NOT NULL,
    borrowed_at TEXT NOT NULL,
    returned_at TEXT,
    history TEXT NOT NULL
);`
)

// schemaDDL lists all table definitions executed on open.
var schemaDDL = []string{
	createBooks,
	createUsers,
	createLoans,
}
