package domain

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Niveles de dificultad (filterByDifficulty, -1 = sin filtrar).
const (
	DifficultyBeginner     = 0
	DifficultyIntermediate = 1
	DifficultyAdvanced     = 2
)

// Exercise es una entrada del catálogo de ejercicios.
type Exercise struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	MuscleGroup  string     `json:"muscleGroup"`
	Equipment    string     `json:"equipment"`
	Difficulty   int        `json:"difficulty"`
	VideoURL     string     `json:"videoUrl"`
	Instructions string     `json:"instructions"`
	CreatedBy    int64      `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

func (e *Exercise) PartitionKey() string {
	return strconv.FormatInt(e.ID, 10)
}

func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.MuscleGroup) == "" {
		return ErrInvalidExercise
	}
	if e.Difficulty < DifficultyBeginner || e.Difficulty > DifficultyAdvanced {
		return ErrInvalidExercise
	}
	if e.VideoURL != "" {
		if u, err := url.Parse(e.VideoURL); err != nil || u.Host == "" {
			return ErrInvalidExercise
		}
	}
	return nil
}

// EmbedURL convierte un enlace de YouTube o Vimeo en su URL embebible.
// Devuelve "" si no hay vídeo o el proveedor no es conocido.
func (e *Exercise) EmbedURL() string {
	u, err := url.Parse(strings.TrimSpace(e.VideoURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	first, rest := splitPath(u.Path)

	switch host {
	case "youtube.com":
		switch first {
		case "watch":
			return youtubeEmbed(u.Query().Get("v"))
		case "shorts", "embed", "live":
			return youtubeEmbed(rest)
		}
	case "youtu.be":
		return youtubeEmbed(first)
	case "vimeo.com":
		if _, err := strconv.ParseUint(first, 10, 64); err == nil {
			return "https://player.vimeo.com/video/" + first
		}
	case "player.vimeo.com":
		if first == "video" && rest != "" {
			return "https://player.vimeo.com/video/" + rest
		}
	}
	return ""
}

func splitPath(p string) (string, string) {
	parts := strings.Split(strings.Trim(path.Clean(p), "/"), "/")
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func youtubeEmbed(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

var _ sharedBus.Keyer = (*Exercise)(nil)
