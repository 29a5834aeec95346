// Package core contains the lending rules of the IntelliLib desk:
// loans of books to students, their due dates, and the late fine.
//
// Everything here is pure. Loading and saving the documents these types are
// built from is the job of the feature handlers and package shell.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
