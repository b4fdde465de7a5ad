package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Repositories, *gorm.DB) {
	t.Helper()
	s := testutil.NewServer(t)
	return NewRepositories(s), s.DB.ORM
}

func TestTable_AddGetListDelete(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	planet := &model.Planet{Name: "Tatooine", Gravity: 1, Population: 200000, Climate: "arid", Terrain: "desert"}
	require.NoError(t, repos.Planets.Add(ctx, planet))
	require.NotZero(t, planet.ID)

	got, err := repos.Planets.Get(ctx, planet.ID)
	require.NoError(t, err)
	assert.Equal(t, *planet, *got)

	all, err := repos.Planets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repos.Planets.Delete(ctx, planet.ID))

	_, err = repos.Planets.Get(ctx, planet.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "table:planets:")
}

func TestTable_ListEmptyIsNotNil(t *testing.T) {
	repos, _ := setup(t)

	items, err := repos.Vehicles.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestTable_DeleteMissingFails(t *testing.T) {
	repos, _ := setup(t)

	err := repos.Characters.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTable_IDsOutsideColumnRange(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	for _, id := range []uint{0, math.MaxInt64 + 1, math.MaxUint64} {
		_, err := repos.Users.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound, id)

		assert.ErrorIs(t, repos.Users.Delete(ctx, id), ErrNotFound, id)

		ok, err := repos.Users.Exists(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok, id)

		favs, err := repos.Favorites.ListByUser(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, favs)

		err = repos.Favorites.DeleteByTarget(ctx, 1, model.Target{Kind: model.TargetPlanet, ID: id})
		assert.ErrorIs(t, err, ErrNotFound, id)
	}
}

func TestTable_Exists(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	c := &model.Character{Name: "Yoda", Age: 900, Gender: "male", SkinColor: "green"}
	require.NoError(t, repos.Characters.Add(ctx, c))

	ok, err := repos.Characters.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Characters.Exists(ctx, c.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTable_UniqueUsername(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.Add(ctx, &model.User{Name: "Luke", Username: "luke", Email: "a@x.org"}))

	err := repos.Users.Add(ctx, &model.User{Name: "Other", Username: "luke", Email: "b@x.org"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestSession_CommitMakesWritesVisible(t *testing.T) {
	repos, db := setup(t)
	ctx := context.Background()

	session, err := BeginSession(ctx, db)
	require.NoError(t, err)
	sctx := WithSession(ctx, session)

	v := &model.Vehicle{Name: "Sand Crawler", Model: "Digger Crawler", Capacity: 30, VehicleClass: "wheeled"}
	require.NoError(t, repos.Vehicles.Add(sctx, v))

	inSession, err := repos.Vehicles.List(sctx)
	require.NoError(t, err)
	assert.Len(t, inSession, 1)

	require.NoError(t, session.Commit())
	require.NoError(t, session.Rollback(), "rollback after commit is a no-op")
	assert.ErrorIs(t, session.Commit(), ErrSessionClosed)

	_, ok := SessionFromContext(sctx)
	assert.False(t, ok, "closed sessions are not handed out")

	got, err := repos.Vehicles.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sand Crawler", got.Name)
}

func TestSession_RollbackDiscardsWrites(t *testing.T) {
	repos, db := setup(t)
	ctx := context.Background()

	session, err := BeginSession(ctx, db)
	require.NoError(t, err)

	c := &model.Character{Name: "Jar Jar", Age: 52, Gender: "male", SkinColor: "orange"}
	require.NoError(t, repos.Characters.Add(WithSession(ctx, session), c))
	require.NoError(t, session.Rollback())

	_, err = repos.Characters.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedFavoriteTargets(t *testing.T, repos *Repositories) (*model.User, *model.Character, *model.Planet) {
	t.Helper()
	ctx := context.Background()

	u := &model.User{Name: "Leia", Username: "leia", Email: "leia@alderaan.gov"}
	require.NoError(t, repos.Users.Add(ctx, u))
	c := &model.Character{Name: "Han", Age: 32, Gender: "male", SkinColor: "fair"}
	require.NoError(t, repos.Characters.Add(ctx, c))
	p := &model.Planet{Name: "Alderaan", Gravity: 1, Population: 2000000000, Climate: "temperate", Terrain: "grasslands"}
	require.NoError(t, repos.Planets.Add(ctx, p))
	return u, c, p
}

func TestFavoriteRepository_ByTarget(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()
	u, c, p := seedFavoriteTargets(t, repos)

	charTarget := model.Target{Kind: model.TargetCharacter, ID: c.ID}
	fav, err := model.NewFavorite(u.ID, charTarget)
	require.NoError(t, err)
	require.NoError(t, repos.Favorites.Add(ctx, fav))

	planetFav, err := model.NewFavorite(u.ID, model.Target{Kind: model.TargetPlanet, ID: p.ID})
	require.NoError(t, err)
	require.NoError(t, repos.Favorites.Add(ctx, planetFav))

	found, err := repos.Favorites.FindByTarget(ctx, u.ID, charTarget)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, found.ID)
	assert.Nil(t, found.PlanetID)

	mine, err := repos.Favorites.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, repos.Favorites.DeleteByTarget(ctx, u.ID, charTarget))
	assert.ErrorIs(t, repos.Favorites.DeleteByTarget(ctx, u.ID, charTarget), ErrNotFound)

	_, err = repos.Favorites.FindByTarget(ctx, u.ID, charTarget)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.Favorites.FindByTarget(ctx, u.ID, model.Target{Kind: "starship", ID: 1})
	assert.Error(t, err)
}

func TestFavoriteRepository_Constraints(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()
	u, c, _ := seedFavoriteTargets(t, repos)

	target := model.Target{Kind: model.TargetCharacter, ID: c.ID}
	first, err := model.NewFavorite(u.ID, target)
	require.NoError(t, err)
	require.NoError(t, repos.Favorites.Add(ctx, first))

	dup, err := model.NewFavorite(u.ID, target)
	require.NoError(t, err)
	assert.ErrorIs(t, repos.Favorites.Add(ctx, dup), gorm.ErrDuplicatedKey)

	dangling, err := model.NewFavorite(u.ID, model.Target{Kind: model.TargetVehicle, ID: 999})
	require.NoError(t, err)
	assert.ErrorIs(t, repos.Favorites.Add(ctx, dangling), gorm.ErrForeignKeyViolated)
}

func TestFavorites_CascadeWithUser(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()
	u, c, _ := seedFavoriteTargets(t, repos)

	fav, err := model.NewFavorite(u.ID, model.Target{Kind: model.TargetCharacter, ID: c.ID})
	require.NoError(t, err)
	require.NoError(t, repos.Favorites.Add(ctx, fav))

	require.NoError(t, repos.Users.Delete(ctx, u.ID))

	all, err := repos.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepositories_TargetExists(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()
	_, c, p := seedFavoriteTargets(t, repos)

	ok, err := repos.TargetExists(ctx, model.Target{Kind: model.TargetCharacter, ID: c.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.TargetExists(ctx, model.Target{Kind: model.TargetPlanet, ID: p.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.TargetExists(ctx, model.Target{Kind: model.TargetVehicle, ID: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repos.TargetExists(ctx, model.Target{Kind: "starship", ID: 1})
	assert.Error(t, err)
}
