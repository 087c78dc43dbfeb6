// Package takes partitions a dubbing script into recording takes.
//
// Interventions sharing a literal (scene, in, out) form a Block. Each scene's
// ordered Blocks are split into contiguous segments by a dynamic program that
// minimizes the number of distinct characters summed over segments, subject
// to the studio constraints checked by Checker: take duration, silence between
// consecutive blocks, wrapped lines per take, and merged lines per character.
//
// Scenes are independent and are partitioned concurrently; take numbers are
// committed afterwards in lexicographic scene order so a plan is reproducible.
// BuildReport fuses each character's consecutive interventions inside a take
// and renumbers takes by start time.
//
// Per-item failures never abort a plan. Bad timecodes and oversized
// interventions become Problems; scenes that admit no partition become
// SegmentationFailures and are left out of the takes.
package takes
