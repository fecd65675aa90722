package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErlanBelekov/league-manager/internal/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccept(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"uuid", "4b0c1f3e-8d2a-4a57-9c61-1f0e2d3c4b5a", true},
		{"short token", "abc-123", true},
		{"dotted", "edge.req_42", true},
		{"empty", "", false},
		{"newline", "abc\nlevel=error", false},
		{"space", "abc 123", false},
		{"too long", strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := requestid.Accept(tt.incoming)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
				return
			}
			assert.NotEqual(t, tt.incoming, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	assert.Empty(t, requestid.FromContext(context.Background()))

	ctx := requestid.WithRequestID(context.Background(), "req-7")
	assert.Equal(t, "req-7", requestid.FromContext(ctx))
}
