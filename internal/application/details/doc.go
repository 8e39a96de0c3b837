// Package details implements the movie details lookup.
//
// The service resolves a request path to a movie id and returns the catalog
// record for it:
//   - The id is the last segment of the path and must be a base-10 integer
//   - Invalid ids are reported as *InvalidInputError
//   - Forwardable tracing headers are captured on every valid lookup
//
// The catalog holds a single title, so every valid id yields the same record
// with the id echoed back.
package details
