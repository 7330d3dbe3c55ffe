package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements shared.FileSystem over the local disk. It only
// reads; every mutation of a space goes through execshell.
type OSFileSystem struct{}

// Stat describes path without following a final symbolic link, so a linked
// directory inside a space is reported as a link and never merged into.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// ReadDir lists directory entries sorted by name.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
