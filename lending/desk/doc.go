// Package desk is the lending desk: one enrollment number input and five actions
// (check issued books, check deadlines, check fine, issue a book, return a book),
// each answered with a Notice to show to the operator.
//
// Every action first checks that the record store is available, then that an
// enrollment number was entered, and only then runs its command or query handler.
// Front-ends (terminal form, HTTP) only render Notices; they hold no lending logic.
package desk
