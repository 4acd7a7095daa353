// Package sink provides ready-made registry callbacks: an in-memory Recorder
// and a zerolog Logger.
package sink
