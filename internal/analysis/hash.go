package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/analytics"
)

// HashSummary returns the hex SHA-256 of the summary's JSON encoding. The encoding
// contains no maps, so equal summaries always hash equally.
func HashSummary(summary *analytics.Summary) (string, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
