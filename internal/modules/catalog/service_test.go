package catalog

import (
	"context"
	"testing"

	"recstudio/internal/database"
	"recstudio/internal/domain"
	"recstudio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	// a second pooled connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	studio := domain.Studio{Name: "Riverside Sound", Timezone: "UTC"}
	require.NoError(t, repository.NewStudioRepository(db).Create(context.Background(), &studio))

	svc := NewService(
		repository.NewRoomRepository(db),
		repository.NewClientRepository(db),
		repository.NewGearRepository(db),
	)
	return svc, studio.ID
}

func TestCreateRoom_PersistsAndLists(t *testing.T) {
	svc, studioID := newTestService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, studioID, CreateRoomRequest{Name: "Studio A", HourlyRate: "80/hr"})
	require.NoError(t, err)
	assert.NotZero(t, room.ID)
	assert.True(t, room.IsActive)

	rooms, err := svc.ListRooms(ctx, studioID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Studio A", rooms[0].Name)
}

func TestCreateRoom_RequiresName(t *testing.T) {
	svc, studioID := newTestService(t)

	_, err := svc.CreateRoom(context.Background(), studioID, CreateRoomRequest{HourlyRate: "80/hr"})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "Name")
}

func TestUpdateRoom_AppliesOnlyProvidedFields(t *testing.T) {
	svc, studioID := newTestService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, studioID, CreateRoomRequest{Name: "Studio A", HourlyRate: "80/hr"})
	require.NoError(t, err)

	rate := "95/hr"
	updated, err := svc.UpdateRoom(ctx, studioID, room.ID, UpdateRoomRequest{HourlyRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, "Studio A", updated.Name)
	assert.Equal(t, "95/hr", updated.HourlyRate)
}

func TestUpdateRoom_CrossTenantInvisible(t *testing.T) {
	svc, studioID := newTestService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, studioID, CreateRoomRequest{Name: "Studio A"})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.UpdateRoom(ctx, studioID+1, room.ID, UpdateRoomRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGear_RejectsNegativeQuantity(t *testing.T) {
	svc, studioID := newTestService(t)

	_, err := svc.CreateGear(context.Background(), studioID, CreateGearRequest{Name: "U87", Quantity: -1})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "Quantity")
}

func TestListClients_ScopedToStudio(t *testing.T) {
	svc, studioID := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateClient(ctx, studioID, CreateClientRequest{Name: "The Midnight Arcs"})
	require.NoError(t, err)
	_, err = svc.CreateClient(ctx, studioID+1000, CreateClientRequest{Name: "Elsewhere Act"})
	require.NoError(t, err)

	clients, err := svc.ListClients(ctx, studioID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "The Midnight Arcs", clients[0].Name)
}
