package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/slotor/internal/clock"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/service/dao"
)

func TestService_SaveAndLoad(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	previous := clock.NowFunc
	clock.NowFunc = func() time.Time { return frozen }
	defer func() { clock.NowFunc = previous }()

	srv := New()
	ctx := context.Background()

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &model.Entry{}), dao.ErrInvalidID)

	_, err := srv.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
	_, err = srv.Load(ctx, "worker1")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "4294967296"}))
	entry, err := srv.Load(ctx, "worker1")
	assert.Nil(t, err)
	assert.Equal(t, "4294967296", entry.Token)
	assert.Equal(t, frozen, entry.UpdatedAt)
}

func TestService_SaveOverwrites(t *testing.T) {
	srv := New()
	ctx := context.Background()

	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "1"}))
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "2"}))

	entry, err := srv.Load(ctx, "worker1")
	assert.Nil(t, err)
	assert.Equal(t, "2", entry.Token)
}

func TestService_LoadReturnsCopy(t *testing.T) {
	srv := New()
	ctx := context.Background()
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "1"}))

	entry, _ := srv.Load(ctx, "worker1")
	entry.Token = "tampered"

	reloaded, _ := srv.Load(ctx, "worker1")
	assert.Equal(t, "1", reloaded.Token)
}

func TestService_SlotNamesAreCaseSensitive(t *testing.T) {
	srv := New()
	ctx := context.Background()
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "Worker", Token: "1"}))

	_, err := srv.Load(ctx, "worker")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	srv := New()
	ctx := context.Background()

	assert.ErrorIs(t, srv.Delete(ctx, "worker1"), dao.ErrNotFound)
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "1"}))
	assert.Nil(t, srv.Delete(ctx, "worker1"))
	_, err := srv.Load(ctx, "worker1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestService_List(t *testing.T) {
	srv := New()
	ctx := context.Background()
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "b", Token: "2"}))
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "a", Token: "1"}))

	entries, err := srv.List(ctx)
	assert.Nil(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Slot)
	assert.Equal(t, "b", entries[1].Slot)

	entries, err = srv.List(ctx, dao.NewParameter("Slot", "b"))
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Slot)
}
