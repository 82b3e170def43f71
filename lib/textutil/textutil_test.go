package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "thesoundofmusic", NormalizeName("  The Sound of\tMusic "))
	require.Equal(t, "jaws", NormalizeName("Jaws"))
}

func TestQueryToken(t *testing.T) {
	require.Equal(t, "One%20Flew%20Over%20the%20Cuckoo%27s%20Nest", QueryToken("One Flew Over the Cuckoo's Nest"))
	require.Equal(t, "Jaws", QueryToken(" Jaws\n"))
}

func TestStripFootnotes(t *testing.T) {
	require.Equal(t, "$1,234,567,890 ", StripFootnotes("$1,234,567,890[a] [b]"))
	require.Equal(t, "no markers", StripFootnotes("no markers"))
}
