package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilePathToURI(t *testing.T) {
	tests := []struct {
		name string
		path string
		want DocumentURI
	}{
		{name: "empty", path: "", want: ""},
		{name: "absolute", path: "/home/user/doc.md", want: "file:///home/user/doc.md"},
		{name: "spaces escaped", path: "/home/user/my doc.md", want: "file:///home/user/my%20doc.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilePathToURI(tt.path))
		})
	}
}

func TestURIToFilePath(t *testing.T) {
	tests := []struct {
		name string
		uri  DocumentURI
		want string
	}{
		{name: "empty", uri: "", want: ""},
		{name: "plain file uri", uri: "file:///home/user/doc.md", want: "/home/user/doc.md"},
		{name: "fragment dropped", uri: "file:///home/user/doc.md#squall", want: "/home/user/doc.md"},
		{name: "escaped space", uri: "file:///home/user/my%20doc.md", want: "/home/user/my doc.md"},
		{name: "non-uri path", uri: "/home/user/doc.md", want: "/home/user/doc.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URIToFilePath(tt.uri))
		})
	}
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "squall", Fragment("file:///a/b.md#squall"))
	assert.Equal(t, "", Fragment("file:///a/b.md"))
	assert.Equal(t, "lua", Fragment("file:///a/b.md#lua"))
}

func TestRoundTrip(t *testing.T) {
	path := "/tmp/workspace/notes.md"
	assert.Equal(t, path, URIToFilePath(FilePathToURI(path)))
}
