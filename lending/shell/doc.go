// Package shell contains the infrastructure shared by the lending feature slices:
// error classification, handler results, document codecs for the two collections,
// the record store backend, and observability helpers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' or 'adapter' layer.
package shell
