package protocol

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// FilePathToURI converts a file path to a DocumentURI.
func FilePathToURI(path string) DocumentURI {
	if path == "" {
		return ""
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	path = filepath.ToSlash(path)

	// On Windows, add extra slash for drive letter
	if runtime.GOOS == "windows" && len(path) >= 2 && path[1] == ':' {
		path = "/" + path
	}

	u := &url.URL{
		Scheme: "file",
		Path:   path,
	}

	return DocumentURI(u.String())
}

// URIToFilePath converts a DocumentURI to a file path. The fragment, if
// any, is dropped: embedded sub-document URIs carry the language tag as
// a fragment on the host file URI, and the host file is the path that
// matters on disk.
func URIToFilePath(uri DocumentURI) string {
	if uri == "" {
		return ""
	}

	u, err := url.Parse(string(uri))
	if err != nil {
		// Not a URI; treat as a raw path with an optional fragment.
		s := string(uri)
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		return s
	}

	if u.Scheme != "file" {
		return strings.TrimSuffix(string(uri), "#"+u.Fragment)
	}

	path := u.Path

	// On Windows, remove leading slash before drive letter
	if runtime.GOOS == "windows" && len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path)
}

// Fragment returns the URI's fragment component, or "".
func Fragment(uri DocumentURI) string {
	if u, err := url.Parse(string(uri)); err == nil {
		return u.Fragment
	}
	if i := strings.IndexByte(string(uri), '#'); i >= 0 {
		return string(uri[i+1:])
	}
	return ""
}
