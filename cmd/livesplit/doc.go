// Package main hosts the livesplit CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline runs
// (split), cached timestamp inspection (timestamps), host readiness checks
// (doctor), and configuration scaffolding (config). It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on presentation.
//
// Keep this package lean: new behavior belongs in the internal packages
// first and is surfaced here through dedicated commands or flags.
package main
