package dto

import (
	"storechain/internal/domain/store"
)

// CreateStoreRequest for opening a new store.
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	StoreNumber string `json:"store_number" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

// UpdateStoreRequest for changing store details.
type UpdateStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	StoreNumber string `json:"store_number" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

// StoreResponse contains store fields with its membership sets.
type StoreResponse struct {
	ID          string   `json:"id"`
	Version     int      `json:"version"`
	Name        string   `json:"name"`
	StoreNumber string   `json:"store_number"`
	Address     string   `json:"address"`
	Employees   []string `json:"employees"`
	Incoming    []string `json:"incoming"`
	Outgoing    []string `json:"outgoing"`
	Current     []string `json:"current"`
}

// FromStore creates StoreResponse from a store entity.
func FromStore(s *store.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID.String(),
		Version:     s.Version,
		Name:        s.Name,
		StoreNumber: s.StoreNumber,
		Address:     s.Address,
		Employees:   idStrings(s.Employees),
		Incoming:    idStrings(s.Incoming),
		Outgoing:    idStrings(s.Outgoing),
		Current:     idStrings(s.Current),
	}
}
