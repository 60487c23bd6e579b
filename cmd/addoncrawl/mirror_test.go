package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/addoncrawl/pkg/crawl"
	"github.com/cuemby/addoncrawl/pkg/model"
)

func TestMediaExtension(t *testing.T) {
	cases := map[string]string{
		"http://x/media.mkv":      ".mkv",
		"http://x/media.jpeg":     ".jpeg",
		"http://x/no-extension":   "",
		"http://x/media.toolong1": "",
		"no-dot-at-all":           "",
	}
	for url, want := range cases {
		assert.Equal(t, want, mediaExtension(url), url)
	}
}

func TestChildDirTopLevel(t *testing.T) {
	dir, err := childDir(mirrorState{dir: "/dest", isTopLevel: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/dest", dir)
}

func TestChildDirMissingLabel(t *testing.T) {
	_, err := childDir(mirrorState{dir: "/dest"}, &model.SubContent{})
	assert.Error(t, err)
}

func TestChildDirUsesLabel(t *testing.T) {
	label := "Show Name"
	dir, err := childDir(mirrorState{dir: "/dest"}, &model.SubContent{ListItem: model.ListItem{Label: &label}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/dest", "Show Name"), dir)
}

func TestMirrorVisitWritesDirectoryNode(t *testing.T) {
	tmp := t.TempDir()
	label1, label2 := "Episode 1", "Episode 2"
	ctx := &crawl.Context{
		Page: model.Page{Children: []model.SubContent{
			{URL: "e1", ListItem: model.ListItem{Label: &label1}},
			{URL: "e2", ListItem: model.ListItem{Label: &label2}},
		}},
	}

	next, descend, err := mirrorVisit(ctx, mirrorState{dir: tmp, isTopLevel: true})
	require.NoError(t, err)
	assert.True(t, descend)
	assert.Equal(t, tmp, next.dir)
	assert.False(t, next.isTopLevel)

	data, err := os.ReadFile(filepath.Join(tmp, "data.json"))
	require.NoError(t, err)
	var save mirrorSave
	require.NoError(t, json.Unmarshal(data, &save))
	assert.Equal(t, "Directory", save.Type)
	assert.Len(t, save.SubContent, 2)

	_, err = os.Stat(filepath.Join(tmp, ".success"))
	assert.NoError(t, err)
}

func TestMirrorVisitWritesLocalMediaFile(t *testing.T) {
	tmp := t.TempDir()
	sourceDir := t.TempDir()
	sourcePath := filepath.Join(sourceDir, "source.mkv")
	require.NoError(t, os.WriteFile(sourcePath, []byte("fake video"), 0o644))

	label := "Episode 1"
	ctx := &crawl.Context{
		Page:                 model.Page{Leaf: &model.ListItem{Label: &label, Path: &sourcePath}},
		SubContentFromParent: &model.SubContent{ListItem: model.ListItem{Label: &label}},
	}

	next, descend, err := mirrorVisit(ctx, mirrorState{dir: tmp})
	require.NoError(t, err)
	assert.True(t, descend)

	mediaData, err := os.ReadFile(filepath.Join(next.dir, "media.mkv"))
	require.NoError(t, err)
	assert.Equal(t, "fake video", string(mediaData))
}

func TestMirrorVisitRejectsLeafWithChildren(t *testing.T) {
	tmp := t.TempDir()
	label := "x"
	ctx := &crawl.Context{
		Page: model.Page{
			Leaf:     &model.ListItem{Label: &label},
			Children: []model.SubContent{{URL: "a"}},
		},
	}
	_, _, err := mirrorVisit(ctx, mirrorState{dir: tmp, isTopLevel: true})
	assert.Error(t, err)
}

func TestMirrorSkipWhenSuccessMarkerPresent(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".success"), nil, 0o644))

	ctx := &crawl.Context{}
	assert.True(t, mirrorSkip(ctx, mirrorState{dir: tmp, isTopLevel: true}))
}

func TestMirrorSkipWhenNoMarker(t *testing.T) {
	tmp := t.TempDir()
	ctx := &crawl.Context{}
	assert.False(t, mirrorSkip(ctx, mirrorState{dir: tmp, isTopLevel: true}))
}
