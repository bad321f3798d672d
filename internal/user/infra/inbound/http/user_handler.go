package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedHttp "github.com/davicafu/gymlab/internal/shared/infra/inbound/http"
	sharedQuery "github.com/davicafu/gymlab/internal/shared/infra/platform/query"
	"github.com/davicafu/gymlab/internal/user/application"
	"github.com/davicafu/gymlab/internal/user/domain"
	"github.com/davicafu/gymlab/pkg/utils"
)

// UserHandler encapsula los endpoints HTTP del personal.
type UserHandler struct {
	service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userRequest struct {
	ID                int64  `json:"id"`
	Names             string `json:"names" binding:"required"`
	Username          string `json:"username" binding:"required"`
	Email             string `json:"email"`
	Role              string `json:"role" binding:"required"`
	Password          string `json:"password"`
	ParamLoggedIdUser int64  `json:"paramLoggedIdUser"`
}

func (r userRequest) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Names: r.Names, Username: r.Username, Email: r.Email, Role: r.Role}
}

// ListUsers endpoint GET /user/list
func (h *UserHandler) ListUsers(c *gin.Context) {
	q := sharedHttp.ParseListQuery(c, domain.SortColumns, sharedQuery.Sort{Field: "id", Desc: true})
	criteria := sharedDomain.And(
		sharedHttp.StatusFilter(c, ""),
		sharedHttp.SearchFilter(q, domain.SearchColumns, domain.SearchByNames),
		sharedHttp.TextFilter(c, "filterByRole", "role"),
	)

	page, err := h.service.ListUsers(c.Request.Context(), criteria, q)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	utils.SendList(c, "users", page.Items, page.TotalRecords)
}

// GetUser endpoint GET /user/get/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid user id")
		return
	}
	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, u, "OK")
}

// AddUser endpoint POST /user/add
func (h *UserHandler) AddUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	u, err := h.service.CreateUser(c.Request.Context(), req.toDomain(), req.Password, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, u, "User created")
}

// UpdateUser endpoint PUT /user/update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.ID <= 0 {
		utils.SendBadRequest(c, "invalid user id")
		return
	}
	u, err := h.service.UpdateUser(c.Request.Context(), req.toDomain(), req.Password, sharedHttp.Actor(c, req.ParamLoggedIdUser))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, u, "User updated")
}

// DeleteUser endpoint DELETE /user/delete/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := sharedHttp.ParseID(c)
	if !ok {
		utils.SendBadRequest(c, "invalid user id")
		return
	}
	var req sharedHttp.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.service.DeleteUser(c.Request.Context(), id, sharedHttp.Actor(c, req.ParamLoggedIdUser)); err != nil {
		writeError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, nil, "User deleted")
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidUser), errors.Is(err, domain.ErrUserAlreadyExists), errors.Is(err, domain.ErrWeakPassword):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
