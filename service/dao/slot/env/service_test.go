package env

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/slotor/model"
	"github.com/viant/slotor/service/dao"
)

func TestService_SaveUsesNamingConvention(t *testing.T) {
	srv := New("SLOTOR_T1")
	ctx := context.Background()
	t.Cleanup(func() { _ = os.Unsetenv("SLOTOR_T1_worker1") })

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &model.Entry{}), dao.ErrInvalidID)

	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "4294967297"}))
	assert.Equal(t, "4294967297", os.Getenv("SLOTOR_T1_worker1"))
}

func TestService_LoadSurvivesInstanceReplacement(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { _ = os.Unsetenv("SLOTOR_T2_worker1") })

	first := New("SLOTOR_T2")
	assert.Nil(t, first.Save(ctx, &model.Entry{Slot: "worker1", Token: "7"}))

	// A fresh instance stands in for the registry a host rebuilds after a
	// state reset; it must see entries written before the reset.
	second := New("SLOTOR_T2")
	entry, err := second.Load(ctx, "worker1")
	assert.Nil(t, err)
	assert.Equal(t, "7", entry.Token)

	_, err = second.Load(ctx, "absent")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	_, err = second.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
}

func TestService_Delete(t *testing.T) {
	srv := New("SLOTOR_T3")
	ctx := context.Background()
	t.Cleanup(func() { _ = os.Unsetenv("SLOTOR_T3_worker1") })

	assert.ErrorIs(t, srv.Delete(ctx, "worker1"), dao.ErrNotFound)
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "worker1", Token: "1"}))
	assert.Nil(t, srv.Delete(ctx, "worker1"))
	_, err := srv.Load(ctx, "worker1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestService_List(t *testing.T) {
	srv := New("SLOTOR_T4")
	ctx := context.Background()
	t.Cleanup(func() {
		_ = os.Unsetenv("SLOTOR_T4_a")
		_ = os.Unsetenv("SLOTOR_T4_b_c")
	})

	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "b_c", Token: "2"}))
	assert.Nil(t, srv.Save(ctx, &model.Entry{Slot: "a", Token: "1"}))

	entries, err := srv.List(ctx)
	assert.Nil(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Slot)
	assert.Equal(t, "1", entries[0].Token)
	assert.Equal(t, "b_c", entries[1].Slot)

	entries, err = srv.List(ctx, dao.NewParameter("Slot", "b_c"))
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "b_c", entries[0].Slot)
}

func TestNew_DefaultPrefix(t *testing.T) {
	srv := New("")
	assert.Equal(t, DefaultPrefix, srv.Prefix())
}
