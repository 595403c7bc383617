// Package planner computes the ordered set of timestamps clips are sampled
// at. It is pure: no I/O, fully deterministic, testable without a video file.
package planner

import (
	"fmt"

	"github.com/user/vidpreview/internal/types"
)

// Plan generates clip start timestamps for a video of the given duration,
// stepping by interval from zero and stopping once a clip would run past the
// end of the video. A positive-duration video never yields an empty plan: if
// even one full clip does not fit, the plan anchors a single clip at zero.
// When maxClips is positive, the earliest maxClips timestamps are kept.
func Plan(videoDuration, clipDuration, interval float64, maxClips int) ([]types.Timestamp, error) {
	if videoDuration <= 0 {
		return nil, fmt.Errorf("%w: video duration %v must be positive", types.ErrInvalidParameter, videoDuration)
	}
	if clipDuration <= 0 {
		return nil, fmt.Errorf("%w: clip duration %v must be positive", types.ErrInvalidParameter, clipDuration)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval %v must be positive", types.ErrInvalidParameter, interval)
	}

	var plan []types.Timestamp
	for t := 0.0; t+clipDuration <= videoDuration; t += interval {
		plan = append(plan, types.Timestamp(t))
	}
	if len(plan) == 0 {
		// Video shorter than one clip: sample from the start, the sampler
		// clips the decode range to what is available.
		plan = []types.Timestamp{0}
	}
	if maxClips > 0 && len(plan) > maxClips {
		plan = plan[:maxClips]
	}
	return plan, nil
}
