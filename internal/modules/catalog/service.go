package catalog

import (
	"context"
	"errors"

	"recstudio/internal/domain"
	"recstudio/internal/pkg/validator"
	"recstudio/internal/repository"

	"gorm.io/gorm"
)

// Service keeps the studio's bookable records: rooms, clients, gear.
// Role gating happens in middleware; tenancy is pinned by the studio id
// the route group resolved.
type Service struct {
	rooms   *repository.RoomRepository
	clients *repository.ClientRepository
	gear    *repository.GearRepository
}

func NewService(rooms *repository.RoomRepository, clients *repository.ClientRepository, gear *repository.GearRepository) *Service {
	return &Service{rooms, clients, gear}
}

/* ---------- ROOMS ---------- */

func (s *Service) CreateRoom(ctx context.Context, studioID int64, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		StudioID:    studioID,
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		IsActive:    true,
	}
	if fields := validator.Validate(room); fields != nil {
		return nil, FieldErrors(fields)
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, studioID, roomID int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.StudioID != studioID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.HourlyRate != nil {
		room.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if fields := validator.Validate(room); fields != nil {
		return nil, FieldErrors(fields)
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, studioID int64) ([]domain.Room, error) {
	return s.rooms.ListByStudio(ctx, studioID)
}

/* ---------- CLIENTS ---------- */

func (s *Service) CreateClient(ctx context.Context, studioID int64, req CreateClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		StudioID: studioID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	}
	if fields := validator.Validate(client); fields != nil {
		return nil, FieldErrors(fields)
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) ListClients(ctx context.Context, studioID int64) ([]domain.Client, error) {
	return s.clients.ListByStudio(ctx, studioID)
}

/* ---------- GEAR ---------- */

func (s *Service) CreateGear(ctx context.Context, studioID int64, req CreateGearRequest) (*domain.Gear, error) {
	item := &domain.Gear{
		StudioID: studioID,
		Name:     req.Name,
		Brand:    req.Brand,
		Model:    req.Model,
		Category: req.Category,
		Quantity: req.Quantity,
	}
	if fields := validator.Validate(item); fields != nil {
		return nil, FieldErrors(fields)
	}
	if err := s.gear.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListGear(ctx context.Context, studioID int64) ([]domain.Gear, error) {
	return s.gear.ListByStudio(ctx, studioID)
}
