package handler

import (
	"fmt"
	"strings"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// CreatePayload is a request body that builds a record of type T.
// Implementations are pointer types such as *model.CreatePlanetPayload.
type CreatePayload[T any] interface {
	validation.Validatable
	ToModel() *T
}

// EntityHandler serves create/list/get/delete for one record type.
type EntityHandler[T model.Record, P CreatePayload[T]] struct {
	Handler
	service    *service.EntityService[T]
	newPayload func() P
}

func NewEntityHandler[T model.Record, P CreatePayload[T]](
	s *server.Server,
	svc *service.EntityService[T],
	newPayload func() P,
) *EntityHandler[T, P] {
	return &EntityHandler[T, P]{
		Handler:    NewHandler(s),
		service:    svc,
		newPayload: newPayload,
	}
}

func (h *EntityHandler[T, P]) Create() echo.HandlerFunc {
	return HandleOK(h.Handler, h.create, h.newPayload)
}

func (h *EntityHandler[T, P]) List() echo.HandlerFunc {
	return HandleOK(h.Handler, h.list, newListPayload)
}

func (h *EntityHandler[T, P]) Get() echo.HandlerFunc {
	return HandleOK(h.Handler, h.get, newGetByIDPayload)
}

func (h *EntityHandler[T, P]) Delete() echo.HandlerFunc {
	return HandleOK(h.Handler, h.delete, newGetByIDPayload)
}

func (h *EntityHandler[T, P]) create(c echo.Context, req P) (*model.CreatedResponse, error) {
	item := req.ToModel()
	if err := h.service.Create(c.Request().Context(), item); err != nil {
		return nil, err
	}
	return &model.CreatedResponse{
		Name: (*item).GetName(),
		Msg:  fmt.Sprintf("%s created with id: %d", strings.ToLower(h.service.Name()), (*item).GetID()),
	}, nil
}

func (h *EntityHandler[T, P]) list(c echo.Context, _ *model.ListPayload) (*model.ListResponse[T], error) {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.ListResponse[T]{Response: items}, nil
}

func (h *EntityHandler[T, P]) get(c echo.Context, req *model.GetByIDPayload) (*model.ItemResponse[*T], error) {
	item, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.ItemResponse[*T]{Response: item}, nil
}

func (h *EntityHandler[T, P]) delete(c echo.Context, req *model.GetByIDPayload) (*model.DeletedResponse, error) {
	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.DeletedResponse{Deleted: true}, nil
}

func newListPayload() *model.ListPayload {
	return &model.ListPayload{}
}

func newGetByIDPayload() *model.GetByIDPayload {
	return &model.GetByIDPayload{}
}
