package emotion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacesedan/emotiondetection/internal/models"
)

const INVALID_TEXT_MESSAGE = "Invalid text! Please try again."

// FormatResponse renders the sentence returned to callers of the detector
// endpoint, or INVALID_TEXT_MESSAGE when no dominant emotion was found.
func FormatResponse(result models.FormattedResult) string {
	if !result.Valid() {
		return INVALID_TEXT_MESSAGE
	}

	return fmt.Sprintf(
		"For the given statement, the system response is 'anger': %s, "+
			"'disgust': %s, 'fear': %s, "+
			"'joy': %s, and 'sadness': %s. "+
			"The dominant emotion is %s.",
		FormatScore(result.Anger),
		FormatScore(result.Disgust),
		FormatScore(result.Fear),
		FormatScore(result.Joy),
		FormatScore(result.Sadness),
		*result.DominantEmotion,
	)
}

// FormatScore prints the shortest representation that round-trips, keeping a
// fractional part on integral values ("1.0", not "1").
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
