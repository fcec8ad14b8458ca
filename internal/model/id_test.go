package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID_Canonicalises(t *testing.T) {
	id, err := ParseID(" 6F9619FF-8B86-D011-B42D-00CF4FC964FF ")
	require.NoError(t, err)
	assert.Equal(t, ID("6f9619ff-8b86-d011-b42d-00cf4fc964ff"), id)
}

func TestParseID_RejectsObjectIDHex(t *testing.T) {
	_, err := ParseID("65a1f0c2e4b0a1b2c3d4e5f6")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestParseIDs_FailsOnFirstBad(t *testing.T) {
	_, err := ParseIDs([]string{NewID().String(), "nope"})
	assert.ErrorIs(t, err, ErrInvalidID)
}
