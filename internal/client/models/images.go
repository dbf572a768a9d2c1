package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// LocalPreviewScheme prefixes placeholders for images that were picked but
// not uploaded yet. The remainder is the local file path.
const LocalPreviewScheme = "blob:"

// MaxGalleryImages bounds the gallery list.
const MaxGalleryImages = 10

// LocalPreview wraps a local file path as a placeholder URL.
func LocalPreview(path string) string {
	return LocalPreviewScheme + path
}

// IsLocalPreview reports whether u is a placeholder rather than a durable URL.
func IsLocalPreview(u string) bool {
	return strings.HasPrefix(u, LocalPreviewScheme)
}

// LocalPreviewPath returns the file path wrapped by a placeholder.
func LocalPreviewPath(u string) (string, bool) {
	if !IsLocalPreview(u) {
		return "", false
	}
	return strings.TrimPrefix(u, LocalPreviewScheme), true
}

// IsDurableURL reports whether u is an absolute http(s) URL.
func IsDurableURL(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// ImageRole names the purpose of an image. Roles drive compression budgets
// and kind-specific required-image rules.
type ImageRole string

const (
	RoleMain      ImageRole = "main"
	RoleFloorplan ImageRole = "floorplan"
	RoleSurvey    ImageRole = "survey"
	RoleLayout    ImageRole = "layout"
	RoleGallery   ImageRole = "gallery"
)

// ImageField addresses one slot of an ImageSet. Index is only meaningful
// for the gallery role.
type ImageField struct {
	Role  ImageRole
	Index int
}

func (f ImageField) String() string {
	if f.Role == RoleGallery {
		return "gallery[" + strconv.Itoa(f.Index) + "]"
	}
	return string(f.Role)
}

// ParseImageField is the inverse of ImageField.String.
func ParseImageField(s string) (ImageField, error) {
	if rest, ok := strings.CutPrefix(s, "gallery["); ok {
		idx, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
		if err != nil || !strings.HasSuffix(rest, "]") || idx < 0 {
			return ImageField{}, fmt.Errorf("invalid gallery field %q", s)
		}
		return ImageField{Role: RoleGallery, Index: idx}, nil
	}
	switch r := ImageRole(s); r {
	case RoleMain, RoleFloorplan, RoleSurvey, RoleLayout:
		return ImageField{Role: r}, nil
	}
	return ImageField{}, fmt.Errorf("unknown image field %q", s)
}

// ImageSet is the images object attached to a record.
type ImageSet struct {
	Main      string   `json:"main"`
	Floorplan string   `json:"floorplan,omitempty"`
	Survey    string   `json:"survey,omitempty"`
	Layout    string   `json:"layout,omitempty"`
	Gallery   []string `json:"gallery,omitempty"`
}

// Clone returns a deep copy.
func (s ImageSet) Clone() ImageSet {
	c := s
	if s.Gallery != nil {
		c.Gallery = append([]string(nil), s.Gallery...)
	}
	return c
}

// Get returns the URL stored in field, or "" if the slot is empty or out of range.
func (s *ImageSet) Get(f ImageField) string {
	switch f.Role {
	case RoleMain:
		return s.Main
	case RoleFloorplan:
		return s.Floorplan
	case RoleSurvey:
		return s.Survey
	case RoleLayout:
		return s.Layout
	case RoleGallery:
		if f.Index >= 0 && f.Index < len(s.Gallery) {
			return s.Gallery[f.Index]
		}
	}
	return ""
}

// Set stores u in field. Setting gallery[len] appends; setting a gallery
// slot to "" removes it and shifts the rest down.
func (s *ImageSet) Set(f ImageField, u string) {
	switch f.Role {
	case RoleMain:
		s.Main = u
	case RoleFloorplan:
		s.Floorplan = u
	case RoleSurvey:
		s.Survey = u
	case RoleLayout:
		s.Layout = u
	case RoleGallery:
		switch {
		case f.Index < 0 || f.Index > len(s.Gallery):
			return
		case u == "" && f.Index < len(s.Gallery):
			s.Gallery = append(s.Gallery[:f.Index], s.Gallery[f.Index+1:]...)
		case f.Index == len(s.Gallery):
			if u != "" {
				s.Gallery = append(s.Gallery, u)
			}
		default:
			s.Gallery[f.Index] = u
		}
	}
}

// Fields lists every non-empty slot in a stable order: main, floorplan,
// survey, layout, then the gallery by index.
func (s *ImageSet) Fields() []ImageField {
	var out []ImageField
	for _, r := range []ImageRole{RoleMain, RoleFloorplan, RoleSurvey, RoleLayout} {
		if s.Get(ImageField{Role: r}) != "" {
			out = append(out, ImageField{Role: r})
		}
	}
	for i, u := range s.Gallery {
		if u != "" {
			out = append(out, ImageField{Role: RoleGallery, Index: i})
		}
	}
	return out
}

// URLs returns every non-empty URL in Fields order.
func (s *ImageSet) URLs() []string {
	fields := s.Fields()
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, s.Get(f))
	}
	return out
}

// ImageHolder is implemented by inputs that carry an image set.
type ImageHolder interface {
	ImageSet() *ImageSet
}
