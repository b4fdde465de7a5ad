package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newServices(t *testing.T) *Services {
	t.Helper()
	repos := repository.NewRepositories(testutil.NewServer(t))
	svc := NewService(repos)
	svc.Users = NewUserService(repos.Users, bcrypt.MinCost)
	return svc
}

func requireHTTPStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func ptr[T any](v T) *T { return &v }

func TestUserService_RegisterHashesPassword(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	user, err := svc.Users.Register(ctx, &model.CreateUserPayload{
		Name: "Luke Skywalker", Username: "luke", Email: "luke@rebellion.org", Password: ptr("x-wing"),
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	stored, err := svc.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Password)
	assert.NotEqual(t, "x-wing", *stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.Password), []byte("x-wing")))
}

func TestUserService_RegisterWithoutPassword(t *testing.T) {
	svc := newServices(t)

	user, err := svc.Users.Register(context.Background(), &model.CreateUserPayload{
		Name: "Leia", Username: "leia", Email: "leia@alderaan.gov",
	})
	require.NoError(t, err)
	assert.Nil(t, user.Password)
}

func TestEntityService_NotFoundNamesEntity(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.Planets.Get(ctx, 7)
	httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Planet 7 not found", httpErr.Message)
	assert.Equal(t, errs.KindNotFound, httpErr.Kind)

	err = svc.Vehicles.Delete(ctx, 3)
	httpErr = requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Vehicle 3 not found", httpErr.Message)
}

func TestEntityService_CreateListDelete(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	c := &model.Character{Name: "Chewbacca", Age: 200, Gender: "male", SkinColor: "unknown"}
	require.NoError(t, svc.Characters.Create(ctx, c))

	all, err := svc.Characters.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Chewbacca", all[0].Name)

	require.NoError(t, svc.Characters.Delete(ctx, c.ID))
	_, err = svc.Characters.Get(ctx, c.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

type seeded struct {
	user      *model.User
	character *model.Character
	planet    *model.Planet
	vehicle   *model.Vehicle
}

func seed(t *testing.T, svc *Services) seeded {
	t.Helper()
	ctx := context.Background()

	u, err := svc.Users.Register(ctx, &model.CreateUserPayload{Name: "Rey", Username: "rey", Email: "rey@jakku.net"})
	require.NoError(t, err)
	c := &model.Character{Name: "BB-8", Age: 3, Gender: "none", SkinColor: "orange"}
	require.NoError(t, svc.Characters.Create(ctx, c))
	p := &model.Planet{Name: "Jakku", Gravity: 1, Population: 6000, Climate: "arid", Terrain: "desert"}
	require.NoError(t, svc.Planets.Create(ctx, p))
	v := &model.Vehicle{Name: "Speeder", Model: "Scavenger", Capacity: 1, VehicleClass: "speeder"}
	require.NoError(t, svc.Vehicles.Create(ctx, v))

	return seeded{user: u, character: c, planet: p, vehicle: v}
}

func TestFavoriteService_AddListRemove(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := seed(t, svc)

	target := model.Target{Kind: model.TargetCharacter, ID: s.character.ID}
	fav, err := svc.Favorites.Add(ctx, s.user.ID, target)
	require.NoError(t, err)
	assert.Equal(t, s.user.ID, fav.UserID)
	require.NotNil(t, fav.CharacterID)
	assert.Equal(t, s.character.ID, *fav.CharacterID)
	assert.Nil(t, fav.PlanetID)
	assert.Nil(t, fav.VehicleID)

	_, err = svc.Favorites.Add(ctx, s.user.ID, model.Target{Kind: model.TargetVehicle, ID: s.vehicle.ID})
	require.NoError(t, err)

	mine, err := svc.Favorites.ListForUser(ctx, s.user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, svc.Favorites.Remove(ctx, s.user.ID, target))

	mine, err = svc.Favorites.ListForUser(ctx, s.user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.NotNil(t, mine[0].VehicleID)

	all, err := svc.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFavoriteService_AddDuplicateConflicts(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := seed(t, svc)

	target := model.Target{Kind: model.TargetPlanet, ID: s.planet.ID}
	_, err := svc.Favorites.Add(ctx, s.user.ID, target)
	require.NoError(t, err)

	_, err = svc.Favorites.Add(ctx, s.user.ID, target)
	httpErr := requireHTTPStatus(t, err, http.StatusConflict)
	assert.Equal(t, "FAVORITE_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, errs.KindConflict, httpErr.Kind)
}

func TestFavoriteService_MissingReferences(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	s := seed(t, svc)

	_, err := svc.Favorites.Add(ctx, s.user.ID+100, model.Target{Kind: model.TargetPlanet, ID: s.planet.ID})
	httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Contains(t, httpErr.Message, "User")

	_, err = svc.Favorites.Add(ctx, s.user.ID, model.Target{Kind: model.TargetVehicle, ID: s.vehicle.ID + 100})
	httpErr = requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Contains(t, httpErr.Message, "Vehicle")

	_, err = svc.Favorites.ListForUser(ctx, s.user.ID+100)
	requireHTTPStatus(t, err, http.StatusNotFound)

	err = svc.Favorites.Remove(ctx, s.user.ID, model.Target{Kind: model.TargetCharacter, ID: s.character.ID})
	requireHTTPStatus(t, err, http.StatusNotFound)
}
