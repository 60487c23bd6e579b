package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuemby/addoncrawl/pkg/crawl"
	"github.com/cuemby/addoncrawl/pkg/model"
	"github.com/cuemby/addoncrawl/pkg/report"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Crawl a plugin tree, saving each node's data and media to a local directory tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		destPath, _ := cmd.Flags().GetString("dest-path")
		if destPath == "" {
			return fmt.Errorf("--dest-path is required")
		}
		initial := mirrorState{dir: destPath, isTopLevel: true}
		return runCrawl(cmd, initial, mirrorVisit, mirrorSkip)
	},
}

func init() {
	mirrorCmd.Flags().String("dest-path", "", "Destination directory to mirror into (required)")
}

// mirrorState is the per-branch data threaded down a mirror crawl: the
// directory this node was saved into, and whether it's the root (whose
// directory is dest-path itself rather than a child's labeled folder).
type mirrorState struct {
	dir        string
	isTopLevel bool
}

// mirrorSave is the shape written to each node's data.json. The
// original's sub-content list was a list of (name, listitem) pairs;
// here it's a name-keyed map, which JSON expresses more directly.
type mirrorSave struct {
	Type          string                      `json:"type"`
	SubContent    map[string]model.SubContent `json:"sub_content,omitempty"`
	MediaFileName string                      `json:"media_file_name,omitempty"`
	MediaURL      string                      `json:"media_url,omitempty"`
	ListItem      *model.ListItem             `json:"listitem,omitempty"`
}

// childDir resolves the directory a node saves into, given the state
// inherited from its parent and the sub-entry the parent used to
// reference it.
func childDir(state mirrorState, sub *model.SubContent) (string, error) {
	if state.isTopLevel {
		return state.dir, nil
	}
	if sub == nil {
		return "", fmt.Errorf("missing the parent sub-entry for a non-root node; can't place it on disk")
	}
	if sub.ListItem.Label == nil {
		return "", fmt.Errorf("can't find a label for this element, so can't save it to a folder")
	}
	return filepath.Join(state.dir, *sub.ListItem.Label), nil
}

func successMarker(dir string) string {
	return filepath.Join(dir, ".success")
}

// mirrorSkip skips a node (and its whole subtree) once its directory
// already carries a success marker from a previous run.
func mirrorSkip(ctx *crawl.Context, state mirrorState) bool {
	dir, err := childDir(state, ctx.SubContentFromParent)
	if err != nil {
		return false
	}
	_, err = os.Stat(successMarker(dir))
	return err == nil
}

// mirrorVisit saves one node's data.json (and, for a leaf, its media
// file) under its resolved directory, then marks it done. Unlike the
// original, the success marker is written right after this node's own
// save completes rather than after its children finish too: pkg/crawl's
// visitor has no post-descent hook to hang that ordering off of, so a
// crawl interrupted mid-subtree will skip the already-saved parent on
// resume but still redo any children that didn't get that far.
func mirrorVisit(ctx *crawl.Context, state mirrorState) (mirrorState, bool, error) {
	dir, err := childDir(state, ctx.SubContentFromParent)
	if err != nil {
		return state, false, err
	}

	page := ctx.Page
	if page.IsLeaf() && len(page.Children) > 0 {
		return state, false, fmt.Errorf("page has both a resolved listitem and sub-content")
	}

	var save mirrorSave
	var mediaURL string
	if page.IsLeaf() {
		if page.Leaf.Path == nil {
			return state, false, fmt.Errorf("can't find the path for this media")
		}
		mediaURL = *page.Leaf.Path
		save = mirrorSave{
			Type:          "Media",
			MediaFileName: "media" + mediaExtension(mediaURL),
			MediaURL:      mediaURL,
			ListItem:      page.Leaf,
		}
	} else {
		children := make(map[string]model.SubContent, len(page.Children))
		for _, sub := range page.Children {
			if sub.ListItem.Label == nil {
				return state, false, fmt.Errorf("can't find a label for a child at %s", sub.URL)
			}
			children[*sub.ListItem.Label] = sub
		}
		save = mirrorSave{Type: "Directory", SubContent: children}
	}

	if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return state, false, fmt.Errorf("creating mirror directory %s: %w", dir, err)
	}

	dataPath := filepath.Join(dir, "data.json")
	f, err := os.Create(dataPath)
	if err != nil {
		return state, false, fmt.Errorf("creating %s: %w", dataPath, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	encErr := enc.Encode(save)
	f.Close()
	if encErr != nil {
		return state, false, fmt.Errorf("writing %s: %w", dataPath, encErr)
	}

	if save.Type == "Media" {
		mediaPath := filepath.Join(dir, save.MediaFileName)
		if err := fetchMedia(mediaPath, mediaURL); err != nil {
			return state, false, fmt.Errorf("downloading the main media file: %w", err)
		}
	}

	if err := os.WriteFile(successMarker(dir), nil, 0o644); err != nil {
		return state, false, fmt.Errorf("writing success marker: %w", err)
	}

	return mirrorState{dir: dir, isTopLevel: false}, true, nil
}

// mediaExtension extracts a short extension (".mkv", ".jpg") from a
// media URL, or "" if the part after the last dot is too long to
// plausibly be one.
func mediaExtension(u string) string {
	idx := strings.LastIndex(u, ".")
	if idx < 0 {
		return ""
	}
	ext := u[idx+1:]
	if len(ext) > 5 {
		return ""
	}
	return "." + ext
}

// fetchMedia downloads or copies mediaURL to dest, depending on
// whether it's an http(s) URL or a local path.
func fetchMedia(dest, mediaURL string) error {
	if strings.HasPrefix(mediaURL, "http://") || strings.HasPrefix(mediaURL, "https://") {
		resp, err := http.Get(mediaURL)
		if err != nil {
			return fmt.Errorf("getting %s: %w", mediaURL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("getting %s returned status %s", mediaURL, resp.Status)
		}
		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, resp.Body)
		return err
	}

	src, err := os.Open(mediaURL)
	if err != nil {
		return fmt.Errorf("opening local media %s: %w", mediaURL, err)
	}
	defer src.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, src)
	return err
}
