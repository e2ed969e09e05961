package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-blog/apiserver/types"
)

func TestCanMutate(t *testing.T) {
	assert.True(t, canMutate("owner", "owner", types.RoleUser))
	assert.True(t, canMutate("owner", "someone-else", types.RoleAdmin))
	assert.False(t, canMutate("owner", "someone-else", types.RoleUser))
	assert.False(t, canMutate("owner", "", types.RoleUser))
}
