// Package session provides match session management for the Ludo server.
//
// The session package implements:
//   - Thread-safe match storage and retrieval
//   - Unique match ID generation
//   - Match lifecycle management
//   - Concurrent access control
//   - Match cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all match operations.
// Each session wraps an individual match with its own engine instance and
// metadata like creation time and last access time.
//
// Match Identifiers:
//
// Matches use 4-character hexadecimal IDs for easy reference. The manager
// ensures IDs are unique and provides collision-resistant generation using
// cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// matches simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new match
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve an existing match
//	sess, err = manager.Get(matchID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active matches
//	sessions := manager.List()
//
// Cleanup:
//
// Matches can be explicitly deleted or expire based on inactivity. The
// manager provides a cleanup method for removing stale matches.
package session
