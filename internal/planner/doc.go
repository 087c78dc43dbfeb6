// Package planner runs the take-planning pipeline for one script.
//
// A run loads the script, detects the dialogue language, groups blocks,
// reports problem interventions, partitions every scene into takes, builds the
// report, optionally writes report files, and records the run in history.
// Every run gets a UUID that is attached to its logs and history row.
//
// History writes are serialized across processes by a lock file in the state
// directory.
package planner
