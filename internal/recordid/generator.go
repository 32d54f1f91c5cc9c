package recordid

import (
	"fmt"

	"github.com/google/uuid"
)

/*
Generator issues record IDs.

Contract:
  - NewID returns a fresh, globally unique base ID per transaction.
  - Qualify is deterministic: identical (base, key, value) triples always
    yield the same derived ID, and distinct values for the same base yield
    distinct IDs. The primary record of a transaction is never qualified;
    it keeps the raw base ID.
*/
type Generator interface {
	NewID() (string, error)
	Qualify(base string, key string, value string) string
}

// UUIDGenerator issues urn:uuid IDs: random (v4) base IDs and name-based
// (v5) qualified IDs derived from the base plus the qualifier pair.
type UUIDGenerator struct {
	namespace uuid.UUID
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{
		namespace: uuid.NameSpaceURL,
	}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating record id: %w", err)
	}
	return "urn:uuid:" + id.String(), nil
}

func (g *UUIDGenerator) Qualify(base string, key string, value string) string {
	name := base + "\n" + key + ":" + value
	return "urn:uuid:" + uuid.NewSHA1(g.namespace, []byte(name)).String()
}
