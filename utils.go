package spap

import (
	"regexp"
	"strings"
)

var slashRunRegex = regexp.MustCompile(`/{2,}`)

// ObjectKey joins prefix and objectName with a "/" separator, collapses runs
// of "/" into one and strips a single leading "/".
//
//	ObjectKey("site", "a/b.js")    // "site/a/b.js"
//	ObjectKey("", "/index.html")   // "index.html"
//	ObjectKey("site/", "//a.css")  // "site/a.css"
func ObjectKey(prefix, objectName string) string {
	key := slashRunRegex.ReplaceAllString(prefix+"/"+objectName, "/")
	return strings.TrimPrefix(key, "/")
}

// IsBinaryContentType reports whether a content type's primary type is
// image, video or audio. Such content is base64 encoded in responses.
func IsBinaryContentType(contentType string) bool {
	primary, _, _ := strings.Cut(contentType, "/")
	switch strings.ToLower(strings.TrimSpace(primary)) {
	case "image", "video", "audio":
		return true
	default:
		return false
	}
}
