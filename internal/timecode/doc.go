// Package timecode converts dubbing-script timecodes to seconds and back.
//
// Two layouts are accepted: HH:MM:SS and HH:MM:SS:FF, where FF counts frames at
// the configured frame rate. Parsing is pure; malformed input yields a
// *FormatError that matches ErrTimeFormat.
package timecode
