package handler

import (
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler shares list/get/delete with the other records and
// registers users through UserService so passwords get hashed.
type UserHandler struct {
	*EntityHandler[model.User, *model.CreateUserPayload]
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		EntityHandler: NewEntityHandler(s, users.EntityService, newCreateUserPayload),
		users:         users,
	}
}

func (h *UserHandler) Create() echo.HandlerFunc {
	return HandleOK(h.Handler, h.register, newCreateUserPayload)
}

func (h *UserHandler) register(c echo.Context, req *model.CreateUserPayload) (*model.CreatedResponse, error) {
	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.CreatedResponse{
		Name: user.Name,
		Msg:  fmt.Sprintf("user created with id: %d", user.ID),
	}, nil
}

func newCreateUserPayload() *model.CreateUserPayload {
	return &model.CreateUserPayload{}
}
