package entities

import (
	"sort"
	"strconv"
	"strings"
)

// SelectRendition picks the highest-resolution progressive rendition in the
// given container. Renditions with unknown resolution are ignored. Equal
// resolutions keep provider order. ok is false when nothing matches.
func SelectRendition(renditions []Rendition, container string) (Rendition, bool) {
	candidates := FilterRenditions(renditions, true, container)
	if len(candidates) == 0 {
		return Rendition{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Resolution() > candidates[j].Resolution()
	})

	return candidates[0], true
}

// FilterRenditions keeps renditions with the given progressive flag and
// container that have a known resolution
func FilterRenditions(renditions []Rendition, progressive bool, container string) []Rendition {
	var result []Rendition
	for _, r := range renditions {
		if r.Progressive != progressive {
			continue
		}
		if !strings.EqualFold(r.Container, container) {
			continue
		}
		if r.Resolution() <= 0 {
			continue
		}
		result = append(result, r)
	}
	return result
}

// Resolution returns the vertical resolution in pixels, falling back to the
// quality label ("720p", "1080p60") when height is unknown
func (r Rendition) Resolution() int {
	if r.Height > 0 {
		return r.Height
	}
	return ParseQualityLabel(r.QualityLabel)
}

// ParseQualityLabel extracts the leading pixel count from labels like "720p60"
func ParseQualityLabel(label string) int {
	idx := strings.IndexByte(label, 'p')
	if idx <= 0 {
		return 0
	}
	height, err := strconv.Atoi(label[:idx])
	if err != nil {
		return 0
	}
	return height
}

// ContainerFromMimeType returns the container of a MIME type such as
// `video/mp4; codecs="avc1.42001E, mp4a.40.2"`
func ContainerFromMimeType(mimeType string) string {
	mediaType, _, _ := strings.Cut(mimeType, ";")
	_, subtype, found := strings.Cut(strings.TrimSpace(mediaType), "/")
	if !found {
		return ""
	}
	return strings.ToLower(subtype)
}
