// Command intellib runs the library lending desk.
//
// Without -action it shows an interactive form on the terminal. With -action it answers one
// action and exits non-zero when the answer is an error notice. With -serve it starts the HTTP
// front-end, and with -migrate it applies the schema migrations and exits.
//
// Examples:
//
//	intellib -action issue -enrollment E001 -book 1234567891026
//	intellib -action fine -enrollment E001
//	intellib -serve :8080
//	INTELLIB_DATABASE_URL=postgres://... intellib -migrate
package main
