package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExercise_EmbedURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=abc123&t=10":  "https://www.youtube.com/embed/abc123",
		"https://m.youtube.com/watch?v=abc123":         "https://www.youtube.com/embed/abc123",
		"https://youtu.be/xyz789":                      "https://www.youtube.com/embed/xyz789",
		"https://youtube.com/shorts/short1":            "https://www.youtube.com/embed/short1",
		"https://www.youtube.com/embed/already":        "https://www.youtube.com/embed/already",
		"https://vimeo.com/123456":                     "https://player.vimeo.com/video/123456",
		"https://player.vimeo.com/video/123456":        "https://player.vimeo.com/video/123456",
		"https://vimeo.com/channels/staffpicks":        "",
		"https://example.com/video.mp4":                "",
		"":                                             "",
		"https://www.youtube.com/watch?feature=shared": "",
	}
	for in, want := range cases {
		e := Exercise{VideoURL: in}
		assert.Equal(t, want, e.EmbedURL(), in)
	}
}

func TestExercise_Validate(t *testing.T) {
	ok := Exercise{Name: "Sentadilla", MuscleGroup: "piernas", Difficulty: DifficultyIntermediate}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Difficulty = 5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidExercise)

	bad = ok
	bad.VideoURL = "not a url"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidExercise)
}

func TestHasVideoCriteria(t *testing.T) {
	assert.Equal(t, "<>", string(HasVideoCriteria{HasVideo: true}.ToConditions()[0].Op))
	assert.Equal(t, "=", string(HasVideoCriteria{}.ToConditions()[0].Op))
}
