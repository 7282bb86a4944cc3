package service

import "github.com/google/uuid"

// UUIDGenerator implements command.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates the generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// GenerateID returns a new UUID string.
func (g *UUIDGenerator) GenerateID() string {
	return uuid.New().String()
}
