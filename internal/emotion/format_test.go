package emotion

import (
	"testing"

	"github.com/spacesedan/emotiondetection/internal/models"
)

func TestFormatResponse(t *testing.T) {
	joy := models.EMOTION_JOY
	result := models.FormattedResult{
		Anger:           0.006274985,
		Disgust:         0.0025598293,
		Fear:            0.009251528,
		Joy:             0.9680386,
		Sadness:         0.049744144,
		DominantEmotion: &joy,
	}

	want := "For the given statement, the system response is 'anger': 0.006274985, " +
		"'disgust': 0.0025598293, 'fear': 0.009251528, " +
		"'joy': 0.9680386, and 'sadness': 0.049744144. " +
		"The dominant emotion is joy."

	if got := FormatResponse(result); got != want {
		t.Fatalf("unexpected response:\n got: %s\nwant: %s", got, want)
	}
}

func TestFormatResponseInvalid(t *testing.T) {
	if got := FormatResponse(models.FormattedResult{}); got != "Invalid text! Please try again." {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestFormatScore(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.25, "0.25"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
	}

	for _, tc := range cases {
		if got := FormatScore(tc.in); got != tc.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
