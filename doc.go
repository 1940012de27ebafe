// Package tgraph maintains a temporal graph, evolves it through per-step
// batches of mutations and recomputes earliest arrival times from a source
// vertex after every step.
//
// Every vertex and edge carries a half-open validity interval [start, end).
// Nothing is ever freed: deletions close an interval, so the store holds the
// whole history and a traversal decides what was present when.
//
// Packages:
//
//	core/       temporal graph store: vertices, edges, intervals, read snapshots
//	mutation/   record parsing, type-ordered batch application, shard reader
//	earliest/   label-setting earliest-arrival search with a horizon
//	output/     per-step CSV result files
//	metrics/    Prometheus collectors for per-step statistics
//	pipeline/   config, logging and the read → apply → compute → write loop
//	cmd/tgraph  command line entry point
//
// Arrival rule: leaving u at a(u) over an edge open during [s, e) reaches the
// other end at r = max(a(u), s) + 1, accepted when s < r < e and r is within
// the horizon.
//
//	  1 ──[1,∞)──▶ 2 ──[3,5)──▶ 3
//	  a=0          a=2          a=4
package tgraph
