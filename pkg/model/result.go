package model

import (
	"encoding/json"
	"fmt"
)

// ResultKind discriminates the two variants the resolver helper may
// produce for one call.
type ResultKind int

const (
	// ResultContent means the node resolved to a Page: either an
	// interior node (non-empty Children) or a leaf (Leaf set).
	ResultContent ResultKind = iota
	// ResultPrompt means the plugin wants interactive keyboard input.
	// Only meaningful at the top level of a crawl; encountering it at
	// any other node is a scheduler-level internal inconsistency
	// (spec.md §7).
	ResultPrompt
)

func (k ResultKind) String() string {
	switch k {
	case ResultContent:
		return "Content"
	case ResultPrompt:
		return "Keyboard"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result is the tagged union the resolver returns for one access
// descriptor, mirroring the helper's JSON schema:
//
//	{ "type": "Content", "sub_content": [...], "resolved_listitem": ... }
//	{ "type": "Keyboard", "default": ..., "heading": ..., "hidden": ... }
type Result struct {
	Kind   ResultKind
	Page   Page
	Prompt Prompt
}

// Prompt is the keyboard-input request a plugin can surface instead of
// content. It carries no children; a crawl encountering one below the
// root must report and not descend.
type Prompt struct {
	Default *string `json:"default"`
	Heading *string `json:"heading"`
	Hidden  bool    `json:"hidden"`
}

// Page is the unit the crawl scheduler walks: an ordered list of child
// sub-entries and, optionally, a resolved leaf. A Page is a leaf iff
// Leaf is non-nil; per spec.md §3 a leaf carrying a non-empty Children
// list is not itself a scheduler error, only something the default
// visitors flag.
type Page struct {
	Children []SubContent `json:"sub_content"`
	Leaf     *ListItem    `json:"resolved_listitem"`
}

// IsLeaf reports whether this page carries a resolved leaf descriptor.
func (p Page) IsLeaf() bool {
	return p.Leaf != nil
}

// SubContent is one entry in a page's children list: the child's path,
// whether it is itself a folder, an item-count hint, and the
// parent-supplied metadata the child may inherit defaults from.
type SubContent struct {
	URL        string   `json:"url"`
	IsFolder   bool     `json:"is_folder"`
	TotalItems int      `json:"total_items"`
	ListItem   ListItem `json:"listitem"`
}

// ListItem is the resolved-media/display descriptor schema shared by a
// page's leaf and every child sub-entry's parent-supplied metadata.
type ListItem struct {
	Label              *string            `json:"label"`
	Path               *string            `json:"path"`
	Arts               map[string]*string `json:"arts"`
	Category           *string            `json:"category"`
	Info               Info               `json:"info"`
	Subtitles          []*string          `json:"subtitles"`
	Properties         map[string]string  `json:"properties"`
	AvailableLanguages []string           `json:"x_avalaible_languages"`
	StreamInfo         StreamInfo         `json:"stream_info"`
}

// Info is free-form media metadata; every field is optional because
// the resolver helper only populates what the plugin provided.
type Info struct {
	Plot      *string `json:"plot"`
	Season    *int64  `json:"season"`
	Episode   *int64  `json:"episode"`
	MediaType *string `json:"mediatype"`
	Album     *string `json:"album"`
	Count     *int64  `json:"count"`
	Title     *string `json:"title"`
	Artist    *string `json:"artist"`
	Comment   *string `json:"comment"`
	Genre     *string `json:"genre"`
	Year      *int64  `json:"year"`
	Duration  *int64  `json:"duration"`
}

// StreamInfo carries stream-level hints, currently just the audio
// track's language.
type StreamInfo struct {
	Audio StreamInfoAudio `json:"audio"`
}

// StreamInfoAudio is the audio-track portion of StreamInfo.
type StreamInfoAudio struct {
	Language *string `json:"language"`
}

var playableKeys = []string{"IsPlayable", "isPlayable", "Isplayable", "isplayable"}
var playableValues = map[string]bool{"true": true, "True": true, "TRUE": true}

// IsPlayable reports whether this ListItem's properties mark it as
// playable, per the playability flag documented in the resolver
// helper interface: any of the four case variants of "IsPlayable" set
// to "true"/"True"/"TRUE".
func (li ListItem) IsPlayable() bool {
	for _, key := range playableKeys {
		if playableValues[li.Properties[key]] {
			return true
		}
	}
	return false
}

// Extend applies other as defaults onto li, used to apply a parent
// sub-entry's metadata onto a child's leaf descriptor (spec.md §4.E,
// "Parent sub-entry lookup"). Scalar fields absent in li are taken
// from other; Arts and Properties gain only the keys li lacks;
// Subtitles and AvailableLanguages get other's entries appended after
// li's, with duplicates removed. Existing values in li always win.
func (li *ListItem) Extend(other ListItem) {
	if li.Label == nil {
		li.Label = other.Label
	}
	if li.Path == nil {
		li.Path = other.Path
	}
	if li.Arts == nil {
		li.Arts = map[string]*string{}
	}
	for k, v := range other.Arts {
		if _, ok := li.Arts[k]; !ok {
			li.Arts[k] = v
		}
	}
	if li.Category == nil {
		li.Category = other.Category
	}
	li.Info.extend(other.Info)
	li.Subtitles = dedupOptionalStrings(append(li.Subtitles, other.Subtitles...))
	if li.Properties == nil {
		li.Properties = map[string]string{}
	}
	for k, v := range other.Properties {
		if _, ok := li.Properties[k]; !ok {
			li.Properties[k] = v
		}
	}
	li.AvailableLanguages = dedupStrings(append(li.AvailableLanguages, other.AvailableLanguages...))
	li.StreamInfo.extend(other.StreamInfo)
}

func (i *Info) extend(other Info) {
	fill := func(dst **string, src *string) {
		if *dst == nil {
			*dst = src
		}
	}
	fillInt := func(dst **int64, src *int64) {
		if *dst == nil {
			*dst = src
		}
	}
	fill(&i.Plot, other.Plot)
	fillInt(&i.Season, other.Season)
	fillInt(&i.Episode, other.Episode)
	fill(&i.MediaType, other.MediaType)
	fill(&i.Album, other.Album)
	fillInt(&i.Count, other.Count)
	fill(&i.Title, other.Title)
	fill(&i.Artist, other.Artist)
	fill(&i.Comment, other.Comment)
	fill(&i.Genre, other.Genre)
	fillInt(&i.Year, other.Year)
	fillInt(&i.Duration, other.Duration)
}

func (s *StreamInfo) extend(other StreamInfo) {
	if s.Audio.Language == nil {
		s.Audio.Language = other.Audio.Language
	}
}

// Clone returns a deep copy of r: every pointer and map reachable from
// r.Page is copied rather than shared, so a caller handed r back from
// a cache is free to mutate it (e.g. via ListItem.Extend) without that
// mutation reaching back into the stored entry.
func (r Result) Clone() Result {
	return Result{Kind: r.Kind, Page: r.Page.Clone(), Prompt: r.Prompt}
}

// Clone returns a deep copy of p.
func (p Page) Clone() Page {
	out := Page{}
	if p.Children != nil {
		out.Children = make([]SubContent, len(p.Children))
		for i, c := range p.Children {
			out.Children[i] = SubContent{URL: c.URL, IsFolder: c.IsFolder, TotalItems: c.TotalItems, ListItem: c.ListItem.Clone()}
		}
	}
	if p.Leaf != nil {
		leaf := p.Leaf.Clone()
		out.Leaf = &leaf
	}
	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt64Ptr(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// Clone returns a deep copy of li: every pointer, map and slice is
// copied rather than shared.
func (li ListItem) Clone() ListItem {
	out := li
	out.Label = cloneStringPtr(li.Label)
	out.Path = cloneStringPtr(li.Path)
	out.Category = cloneStringPtr(li.Category)
	out.Info = li.Info.Clone()
	out.StreamInfo = li.StreamInfo.Clone()

	if li.Arts != nil {
		out.Arts = make(map[string]*string, len(li.Arts))
		for k, v := range li.Arts {
			out.Arts[k] = cloneStringPtr(v)
		}
	}
	if li.Subtitles != nil {
		out.Subtitles = make([]*string, len(li.Subtitles))
		for i, v := range li.Subtitles {
			out.Subtitles[i] = cloneStringPtr(v)
		}
	}
	if li.Properties != nil {
		out.Properties = make(map[string]string, len(li.Properties))
		for k, v := range li.Properties {
			out.Properties[k] = v
		}
	}
	if li.AvailableLanguages != nil {
		out.AvailableLanguages = append([]string(nil), li.AvailableLanguages...)
	}
	return out
}

// Clone returns a deep copy of i.
func (i Info) Clone() Info {
	out := i
	out.Plot = cloneStringPtr(i.Plot)
	out.Season = cloneInt64Ptr(i.Season)
	out.Episode = cloneInt64Ptr(i.Episode)
	out.MediaType = cloneStringPtr(i.MediaType)
	out.Album = cloneStringPtr(i.Album)
	out.Count = cloneInt64Ptr(i.Count)
	out.Title = cloneStringPtr(i.Title)
	out.Artist = cloneStringPtr(i.Artist)
	out.Comment = cloneStringPtr(i.Comment)
	out.Genre = cloneStringPtr(i.Genre)
	out.Year = cloneInt64Ptr(i.Year)
	out.Duration = cloneInt64Ptr(i.Duration)
	return out
}

// Clone returns a deep copy of s.
func (s StreamInfo) Clone() StreamInfo {
	out := s
	out.Audio.Language = cloneStringPtr(s.Audio.Language)
	return out
}

func dedupStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func dedupOptionalStrings(values []*string) []*string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]*string, 0, len(values))
	for _, v := range values {
		key := "\x00nil"
		if v != nil {
			key = *v
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}
	return result
}

// resultWire is the on-disk JSON shape the resolver helper writes;
// Result.UnmarshalJSON dispatches on its "type" discriminator.
type resultWire struct {
	Type             string       `json:"type"`
	SubContent       []SubContent `json:"sub_content"`
	ResolvedListItem *ListItem    `json:"resolved_listitem"`
	Default          *string      `json:"default"`
	Heading          *string      `json:"heading"`
	Hidden           bool         `json:"hidden"`
}

// UnmarshalJSON implements the tagged-union decoding for Result.
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire resultWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case "Content":
		r.Kind = ResultContent
		r.Page = Page{Children: wire.SubContent, Leaf: wire.ResolvedListItem}
	case "Keyboard":
		r.Kind = ResultPrompt
		r.Prompt = Prompt{Default: wire.Default, Heading: wire.Heading, Hidden: wire.Hidden}
	default:
		return fmt.Errorf("model: unrecognized result type %q", wire.Type)
	}
	return nil
}

// MarshalJSON implements the inverse of UnmarshalJSON, used by tests.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ResultContent:
		return json.Marshal(resultWire{
			Type:             "Content",
			SubContent:       r.Page.Children,
			ResolvedListItem: r.Page.Leaf,
		})
	case ResultPrompt:
		return json.Marshal(resultWire{
			Type:    "Keyboard",
			Default: r.Prompt.Default,
			Heading: r.Prompt.Heading,
			Hidden:  r.Prompt.Hidden,
		})
	default:
		return nil, fmt.Errorf("model: unrecognized result kind %v", r.Kind)
	}
}
