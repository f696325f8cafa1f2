package parse

import (
	"regexp"
	"strings"
)

type Kind int

const (
	KindOther Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "other"
	}
}

const fileAttached = "(file attached)"

// attachmentRe matches "< pièce jointe : name >", including the spelling
// without accent and the mis-decoded UTF-8 one.
var attachmentRe = regexp.MustCompile(`(?i)<[\s\p{Zs}]*pi(?:e|\x{00e8}|\x{00c3}\x{00a8})ce[\s\p{Zs}]+jointe[\s\p{Zs}]*:[\s\p{Zs}]*([^>]+)[\s\p{Zs}]*>`)

var (
	imageExts = map[string]bool{"jpg": true, "png": true, "jpeg": true, "gif": true, "webp": true}
	videoExts = map[string]bool{"mp4": true, "webm": true, "ogg": true}
)

// SplitAttachments separates the free text of a message from the file names
// it references.
func SplitAttachments(text string) (string, []string) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, leftToRightMark, ""))

	matches := attachmentRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) > 0 {
		var names []string
		for _, m := range matches {
			if name := strings.TrimSpace(m[1]); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return cleaned, nil
		}
		return strings.TrimSpace(attachmentRe.ReplaceAllLiteralString(cleaned, "")), names
	}

	if strings.Contains(cleaned, fileAttached) {
		// this dialect never carries a caption next to the file
		if inferred := strings.TrimSpace(strings.ReplaceAll(cleaned, fileAttached, "")); inferred != "" {
			return "", []string{inferred}
		}
		return "", nil
	}

	return cleaned, nil
}

// EncodeAttachments writes names back in marker form.
func EncodeAttachments(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "< piece jointe : " + n + " >"
	}
	return strings.Join(parts, " ")
}

func extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// KindOf classifies a file name by its extension.
func KindOf(name string) Kind {
	ext := extension(name)
	switch {
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	default:
		return KindOther
	}
}

func IsImage(name string) bool { return KindOf(name) == KindImage }
func IsVideo(name string) bool { return KindOf(name) == KindVideo }

// AllImages reports whether names is non-empty and every name is an image.
func AllImages(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if !IsImage(n) {
			return false
		}
	}
	return true
}

func AllVideos(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if !IsVideo(n) {
			return false
		}
	}
	return true
}
