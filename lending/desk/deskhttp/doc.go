// Package deskhttp exposes the lending desk actions over HTTP.
//
// Every action is a POST taking {"enrollment_no": "...", "book_id": "..."} and answering
// with the notice as JSON. Info notices answer 200, error notices 422, and notices caused
// by a missing record store 503. The status code tells a client how to present the notice;
// the notice text is the same one the terminal form prints.
package deskhttp
