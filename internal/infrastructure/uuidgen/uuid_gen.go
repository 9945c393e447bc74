package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
)

// Generator issues time-ordered (version 7) UUIDs so new documents land at
// the end of the _id index.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID generates a new UUID, falling back to a random one if the clock
// source fails.
func (g *Generator) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
