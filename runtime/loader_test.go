package runtime

import (
	"embed"
	"frog-pond/errors"
	"frog-pond/reaction"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/*
var testdataFolder embed.FS

func TestKeywordLoader_LoadAll_EmbeddedKeywords(t *testing.T) {
	req := require.New(t)
	loader := NewKeywordLoader(keywordsFolder)

	keywords, err := loader.LoadAll("keywords")

	// Then the shipped files match the built-in keyword set
	req.NoError(err)
	req.Equal(reaction.DefaultKeywords, keywords)
}

func TestKeywordLoader_LoadAll_SkipsBlankLinesAndCRLF(t *testing.T) {
	req := require.New(t)
	loader := NewKeywordLoader(testdataFolder)

	keywords, err := loader.LoadAll("testdata/crlf")

	req.NoError(err)
	req.Equal(map[reaction.Trigger][]string{
		reaction.TriggerSleep: {"nap", "snooze"},
	}, keywords)
}

func TestKeywordLoader_LoadAll_Empty(t *testing.T) {
	req := require.New(t)
	loader := NewKeywordLoader(testdataFolder)

	_, err := loader.LoadAll("testdata/empty")

	req.ErrorIs(err, errors.ErrEmptyKeywords)
}

func TestKeywordLoader_LoadAll_MissingDirectory(t *testing.T) {
	req := require.New(t)
	loader := NewKeywordLoader(testdataFolder)

	_, err := loader.LoadAll("testdata/nope")

	req.Error(err)
}
