package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/gymlab/internal/exercise/application"
	"github.com/davicafu/gymlab/internal/exercise/domain"
	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	"github.com/davicafu/gymlab/pkg/utils"
)

type ExerciseHandler struct {
	service *application.ExerciseService
}

func NewExerciseHandler(service *application.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

type exerciseRequest struct {
	ID                int64  `json:"id"`
	Name              string `json:"name" binding:"required"`
	MuscleGroup       string `json:"muscleGroup" binding:"required"`
	Equipment         string `json:"equipment"`
	Difficulty        int    `json:"difficulty"`
	VideoURL          string `json:"videoUrl"`
	Instructions      string `json:"instructions"`
	ParamLoggedIdUser int64  `json:"paramLoggedIdUser"`
}

func (r exerciseRequest) toDomain() *domain.Exercise {
	return &domain.Exercise{
		ID: r.ID, Name: r.Name, MuscleGroup: r.MuscleGroup, Equipment: r.Equipment,
		Difficulty: r.Difficulty, VideoURL: r.VideoURL, Instructions: r.Instructions,
	}
}

// exerciseResponse añade la URL embebible para el modo entrenamiento.
type exerciseResponse struct {
	domain.Exercise
	EmbedURL string `json:"embedUrl"`
}

func toResponse(e domain.Exercise) exerciseResponse {
	return exerciseResponse{Exercise: e, EmbedURL: e.EmbedURL()}
}

// ListExercises endpoint GET /exercise/list
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "name"})
	criteria := sharedDomain.And(
		sharedHttp.StatusFilter(c, ""),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByName),
		sharedHttp.TextFilter(c, "filterByMuscleGroup", "muscle_group"),
		sharedHttp.IntFilter(c, "filterByDifficulty", "difficulty", -1),
		hasVideoFilter(c),
	)

	page, err := h.service.ListExercises(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	items := make([]exerciseResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, toResponse(e))
	}
	utils.SendList(c, "exercises", items, page.TotalRecords)
}

func hasVideoFilter(c *gin.Context) sharedDomain.Criteria {
	switch c.Query("filterByHasVideo") {
	case "true":
		return domain.HasVideoCriteria{HasVideo: true}
	case "false":
		return domain.HasVideoCriteria{HasVideo: false}
	}
	return nil
}

// GetExercise endpoint GET /exercise/get/:id
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid exercise id")
		return
	}
	e, err := h.service.GetExercise(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, toResponse(*e), "OK")
}

// AddExercise endpoint POST /exercise/add
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	e, err := h.service.CreateExercise(c.Request.Context(), req.toDomain(), sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, toResponse(*e), "Exercise created")
}

// UpdateExercise endpoint PUT /exercise/update
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid exercise id")
		return
	}
	e, err := h.service.UpdateExercise(c.Request.Context(), req.toDomain(), sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, toResponse(*e), "Exercise updated")
}

// DeleteExercise endpoint DELETE /exercise/delete/:id
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid exercise id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.DeleteExercise(c.Request.Context(), id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "Exercise deleted")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrExerciseNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidExercise):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
