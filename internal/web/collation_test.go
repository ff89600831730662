package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldNameStripsAccentsAndCase(t *testing.T) {
	assert.Equal(t, "benin", foldName("Bénin"))
	assert.Equal(t, "cote d'ivoire", foldName("Côte d'Ivoire"))
	assert.Equal(t, "francois", foldName("FRANÇOIS"))
}

func TestFoldNameOrdersFrenchLabels(t *testing.T) {
	// byte order would push "Bénin" past every ASCII name
	assert.True(t, foldName("Bénin") < foldName("Burkina"))
	assert.True(t, foldName("Bénin") < foldName("Ghana"))
	assert.True(t, foldName("Niger") < foldName("Togo"))
}

func TestFoldNameMatchesAccentInsensitively(t *testing.T) {
	assert.True(t, strings.Contains(foldName("Bénin"), foldName("benin")))
	assert.True(t, strings.Contains(foldName("Abomey-Calavi"), foldName("calavi")))
	assert.False(t, strings.Contains(foldName("Togo"), foldName("benin")))
}
