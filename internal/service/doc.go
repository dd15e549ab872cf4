// Package service contains the application-specific use cases. It
// orchestrates interactions between domain objects and the repositories
// defined in internal/store, applying transactional boundaries where an
// operation spans a read and a write. Services receive their dependencies
// through constructor injection and never depend on a specific
// infrastructure implementation.
package service
