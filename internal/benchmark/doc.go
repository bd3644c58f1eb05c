// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the hot paths of content loading:
//   - CUE parsing of descriptors, loading orders and fragments
//   - namespace resolution of entry values
//   - dependency validation and order suggestion
//   - aggregation of every content domain over a populated content root
//
// They double as a PGO profile source:
//
//	go test -run=^$ -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
