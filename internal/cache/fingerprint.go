package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

type fingerprintPayload struct {
	ProfileID      string   `json:"profile_id"`
	Skills         []string `json:"skills"`
	CatalogVersion int64    `json:"catalog_version"`
}

// Fingerprint derives a stable cache key from everything a recommendation
// run depends on. Skill names are already normalized and sorted inside the
// set, so equal inputs always hash to the same key.
func Fingerprint(profileID uuid.UUID, skills skill.Set, catalogVersion int64) string {
	payload := fingerprintPayload{
		ProfileID:      profileID.String(),
		Skills:         skills.Names(),
		CatalogVersion: catalogVersion,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(payload.ProfileID)
	}

	sum := sha256.Sum256(raw)
	return "rec:v1:" + hex.EncodeToString(sum[:])
}
