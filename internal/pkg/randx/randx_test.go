package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserID_Unique(t *testing.T) {
	req := require.New(t)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := UserID()

		_, err := uuid.Parse(id)
		req.NoError(err)

		_, dup := seen[id]
		req.False(dup)
		seen[id] = struct{}{}
	}
}
