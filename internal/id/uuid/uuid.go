// Package uuid generates run identifiers.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces random UUID strings.
type Generator struct{}

// New constructs a Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a random UUIDv4 string.
func (g *Generator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}
