package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClubName(t *testing.T) {
	assert.True(t, ClubName("Chess Club"))
	assert.True(t, ClubName("Кружок"))
	assert.False(t, ClubName("ab"))
	assert.False(t, ClubName(strings.Repeat("a", 31)))
	assert.True(t, ClubName(strings.Repeat("a", 30)))
}

func TestClubDescription(t *testing.T) {
	assert.True(t, ClubDescription(""))
	assert.True(t, ClubDescription(strings.Repeat("a", 400)))
	assert.False(t, ClubDescription(strings.Repeat("a", 401)))
}

func TestRequestMessage(t *testing.T) {
	assert.True(t, RequestMessage(""))
	assert.True(t, RequestMessage("want to join"))
	assert.False(t, RequestMessage(strings.Repeat("a", 401)))
}

func TestResponseMessage(t *testing.T) {
	assert.True(t, ResponseMessage("welcome"))
	assert.False(t, ResponseMessage(strings.Repeat("a", 401)))
}
