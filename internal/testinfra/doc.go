// Package testinfra starts the Postgres and Redis containers used by the
// repository integration tests.
//
// The tests carry the "integration" build tag and skip themselves when
// Docker is unavailable:
//
//	go test -tags integration ./internal/repository/...
package testinfra
