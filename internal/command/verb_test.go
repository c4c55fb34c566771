package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerbs_DistinctNames(t *testing.T) {
	seen := make(map[string]Verb)
	for _, v := range Verbs() {
		_, dup := seen[v.String()]
		require.False(t, dup, v.String())
		seen[v.String()] = v
	}
	require.Equal(t, []string{"load", "save", "test"}, []string{VerbLoad.String(), VerbSave.String(), VerbTest.String()})
}

func TestVerb_Metadata(t *testing.T) {
	require.Equal(t, 3, VerbLoad.Args())
	require.Equal(t, 1, VerbSave.Args())
	require.Equal(t, 1, VerbTest.Args())
	require.Equal(t, "save <name>", VerbSave.Usage())
	require.Equal(t, "Verb(9)", Verb(9).String())

	for _, v := range Verbs() {
		require.NotEmpty(t, v.Short())
	}
}
