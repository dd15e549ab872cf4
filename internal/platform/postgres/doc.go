// Package postgres provides the PostgreSQL implementation of the data
// storage interfaces defined in the internal/store package. It handles
// query execution and the mapping between domain entities and database
// records.
package postgres
