package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "ownerID", OwnerIDCtxKey.String())
}

func TestGetOwnerIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID string
		wantOK bool
	}{
		{name: "present", ctx: WithOwnerID(context.Background(), "u-1"), wantID: "u-1", wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "empty", ctx: WithOwnerID(context.Background(), "")},
		{name: "wrong type", ctx: context.WithValue(context.Background(), OwnerIDCtxKey, 42)},
		{name: "plain string key is not ours", ctx: context.WithValue(context.Background(), "ownerID", "u-2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetOwnerIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
