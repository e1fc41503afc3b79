package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"gorm.io/gorm"
)

func setupEntityServiceTest(t *testing.T) (*gorm.DB, EntityService) {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return testDB, NewEntityService(repository.NewEntityRepository(testDB))
}

func TestEntityService_CreateAndGet(t *testing.T) {
	testDB, svc := setupEntityServiceTest(t)
	defer db.CleanupTestDB(testDB)

	stars := 4
	entity, err := svc.Create(model.KindHotel, &model.EntityUpsertRequest{
		Title:    "Haeundae Grand",
		Location: "Busan",
		Stars:    &stars,
	})
	require.NoError(t, err)
	assert.NotZero(t, entity.GetID())

	found, err := svc.GetByID(model.KindHotel, entity.GetID())
	require.NoError(t, err)
	hotel, ok := found.(*model.Hotel)
	require.True(t, ok)
	assert.Equal(t, "Haeundae Grand", hotel.Title)
	assert.Equal(t, 4, hotel.Stars)

	_, err = svc.GetByID(model.KindHotel, 999)
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = svc.Create(model.EntityKind("museum"), &model.EntityUpsertRequest{Title: "Nope"})
	assert.ErrorIs(t, err, ErrInvalidEntityKind)
}

func TestEntityService_Update(t *testing.T) {
	testDB, svc := setupEntityServiceTest(t)
	defer db.CleanupTestDB(testDB)

	entity, err := svc.Create(model.KindTreasure, &model.EntityUpsertRequest{
		Title: "Celadon Vase",
	})
	require.NoError(t, err)

	era := "Goryeo"
	updated, err := svc.Update(model.KindTreasure, entity.GetID(), &model.EntityUpsertRequest{
		Title: "Celadon Vase",
		Era:   &era,
	})
	require.NoError(t, err)
	treasure, ok := updated.(*model.Treasure)
	require.True(t, ok)
	assert.Equal(t, "Goryeo", treasure.Era)

	_, err = svc.Update(model.KindTreasure, 999, &model.EntityUpsertRequest{Title: "Missing"})
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEntityService_Delete(t *testing.T) {
	testDB, svc := setupEntityServiceTest(t)
	defer db.CleanupTestDB(testDB)

	entity, err := svc.Create(model.KindEvent, &model.EntityUpsertRequest{
		Title:    "Lantern Festival",
		Location: "Seoul",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(model.KindEvent, entity.GetID()))

	_, err = svc.GetByID(model.KindEvent, entity.GetID())
	assert.ErrorIs(t, err, ErrEntityNotFound)

	err = svc.Delete(model.KindEvent, entity.GetID())
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEntityService_List_NormalizesPagination(t *testing.T) {
	testDB, svc := setupEntityServiceTest(t)
	defer db.CleanupTestDB(testDB)

	for _, title := range []string{"Place One", "Place Two"} {
		_, err := svc.Create(model.KindPopularPlace, &model.EntityUpsertRequest{
			Title:    title,
			Location: "Seoul",
		})
		require.NoError(t, err)
	}

	result, total, err := svc.List(model.KindPopularPlace, &model.EntityListQuery{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	places, ok := result.(*[]model.PopularPlace)
	require.True(t, ok)
	assert.Len(t, *places, 2)
}
