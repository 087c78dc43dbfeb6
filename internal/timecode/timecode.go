package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrTimeFormat marks timecodes that cannot be parsed.
var ErrTimeFormat = errors.New("invalid timecode")

// FormatError describes a malformed timecode.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrTimeFormat, e.Value, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrTimeFormat
}

// Parse converts HH:MM:SS or HH:MM:SS:FF into seconds. Frames are divided by
// frameRate and added as a fraction of a second.
func Parse(value string, frameRate int) (float64, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return 0, &FormatError{Value: value, Reason: fmt.Sprintf("expected 3 or 4 parts, got %d", len(parts))}
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := parsePart(part)
		if err != nil {
			return 0, &FormatError{Value: value, Reason: fmt.Sprintf("part %d is not numeric", i+1)}
		}
		nums[i] = n
	}
	seconds := float64(nums[0])*3600 + float64(nums[1])*60 + float64(nums[2])
	if len(nums) == 4 {
		if frameRate <= 0 {
			return 0, &FormatError{Value: value, Reason: "frame rate must be positive"}
		}
		seconds += float64(nums[3]) / float64(frameRate)
	}
	return seconds, nil
}

func parsePart(part string) (int, error) {
	if part == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(part)
}

// Format renders seconds as HH:MM:SS:FF, rounding to the nearest frame.
// Negative values clamp to zero.
func Format(seconds float64, frameRate int) string {
	if frameRate <= 0 {
		frameRate = 1
	}
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	totalFrames := int64(math.Round(seconds * float64(frameRate)))
	fps := int64(frameRate)
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	return fmt.Sprintf("%02d:%02d:%02d:%02d",
		totalSeconds/3600,
		(totalSeconds/60)%60,
		totalSeconds%60,
		frames,
	)
}
