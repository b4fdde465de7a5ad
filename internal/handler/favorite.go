package handler

import (
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	Handler
	favorites *service.FavoriteService
}

func NewFavoriteHandler(s *server.Server, favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		Handler:   NewHandler(s),
		favorites: favorites,
	}
}

// List serves every favorite of every user.
func (h *FavoriteHandler) List() echo.HandlerFunc {
	return HandleOK(h.Handler, func(c echo.Context, _ *model.ListPayload) (*model.ListResponse[model.Favorite], error) {
		favorites, err := h.favorites.List(c.Request().Context())
		if err != nil {
			return nil, err
		}
		return &model.ListResponse[model.Favorite]{Response: favorites}, nil
	}, newListPayload)
}

// ListForUser serves the favorites of the user in `:id`.
func (h *FavoriteHandler) ListForUser() echo.HandlerFunc {
	return HandleOK(h.Handler, func(c echo.Context, req *model.GetByIDPayload) (*model.UserFavoritesResponse, error) {
		favorites, err := h.favorites.ListForUser(c.Request().Context(), req.ID)
		if err != nil {
			return nil, err
		}
		return &model.UserFavoritesResponse{Result: favorites}, nil
	}, newGetByIDPayload)
}

// Add links the user in `:id` to the kind record in `:target_id`.
func (h *FavoriteHandler) Add(kind model.TargetKind) echo.HandlerFunc {
	return HandleOK(h.Handler, func(c echo.Context, req *model.FavoritePayload) (*model.FavoriteCreatedResponse, error) {
		target := model.Target{Kind: kind, ID: req.TargetID}
		favorite, err := h.favorites.Add(c.Request().Context(), req.UserID, target)
		if err != nil {
			return nil, err
		}
		return &model.FavoriteCreatedResponse{Kind: kind, Favorite: favorite}, nil
	}, newFavoritePayload)
}

// Remove unlinks the user in `:id` from the kind record in `:target_id`.
func (h *FavoriteHandler) Remove(kind model.TargetKind) echo.HandlerFunc {
	return HandleOK(h.Handler, func(c echo.Context, req *model.FavoritePayload) (*model.DeletedResponse, error) {
		target := model.Target{Kind: kind, ID: req.TargetID}
		if err := h.favorites.Remove(c.Request().Context(), req.UserID, target); err != nil {
			return nil, err
		}
		return &model.DeletedResponse{Deleted: true}, nil
	}, newFavoritePayload)
}

func newFavoritePayload() *model.FavoritePayload {
	return &model.FavoritePayload{}
}
