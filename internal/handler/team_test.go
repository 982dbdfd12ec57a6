package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludeTeamIDNilOnCreate(t *testing.T) {
	// À la création il n'y a pas encore d'équipe à épargner : le paramètre
	// doit être NULL, jamais une chaîne vide (la colonne id est un uuid et
	// "" échoue le cast serveur)
	assert.Nil(t, excludeTeamID(""))
}

func TestExcludeTeamIDKeepsExistingID(t *testing.T) {
	got := excludeTeamID("3f1c9a2e-8b4d-4b6f-9c1d-2a7e5f0b8c3d")
	require.NotNil(t, got)
	assert.Equal(t, "3f1c9a2e-8b4d-4b6f-9c1d-2a7e5f0b8c3d", *got)
}
