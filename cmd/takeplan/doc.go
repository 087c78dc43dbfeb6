// Package main hosts the takeplan CLI entrypoint and command graph.
//
// The Cobra command tree turns a dubbing script into studio takes (plan),
// validates scripts without planning them (check), previews dialogue wrapping
// (wrap), scaffolds configuration, and browses the run history. It centralizes
// .env loading, configuration resolution and logger setup so subcommands only
// translate flags into planner requests and render the results.
//
// Keep this package lean: new behaviour belongs in the internal packages first
// and is surfaced here through dedicated commands or flags.
package main
