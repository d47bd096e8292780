// Package imageref turns the opaque image reference stored with a recipe
// into something a text screen can show.
package imageref

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Placeholder labels.
const (
	NoImage     = "no image"
	Unavailable = "image unavailable"
)

// Image is a displayable form of an image reference.
type Image struct {
	Label       string
	Placeholder bool
}

// Resolve maps ref to a label. Empty or unresolvable references give a
// placeholder. Remote references are named, never fetched.
func Resolve(ref string) Image {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return placeholder(NoImage)
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || isDriveLetter(u.Scheme) {
		return localFile(ref)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return localFile(u.Path)
	case "http", "https":
		if u.Host == "" {
			return placeholder(Unavailable)
		}
		name := path.Base(u.Path)
		if name == "/" || name == "." {
			return Image{Label: u.Host}
		}
		return Image{Label: u.Host + "/…/" + name}
	default:
		return placeholder(Unavailable)
	}
}

func localFile(p string) Image {
	if p == "" {
		return placeholder(Unavailable)
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return placeholder(Unavailable)
	}
	return Image{Label: filepath.Base(p)}
}

func placeholder(label string) Image {
	return Image{Label: label, Placeholder: true}
}

// isDriveLetter reports whether a parsed scheme is really a Windows drive
// such as "C" in C:\photos\a.jpg.
func isDriveLetter(scheme string) bool {
	return len(scheme) == 1
}
