//go:build !unix

package command

import (
	"os"
	"path/filepath"
	"strings"
)

func accessible(path string, access Access) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	switch access {
	case AccessExists:
		return true
	case AccessReadable:
		f, err := os.Open(path)
		if err != nil {
			return false
		}
		_ = f.Close()
		return true
	case AccessWritable:
		return info.Mode().Perm()&0o200 != 0
	default:
		return info.IsDir() || isExecutableExt(filepath.Ext(path))
	}
}

func isExecutableExt(ext string) bool {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".com;.exe;.bat;.cmd"
	}
	for _, e := range strings.Split(pathext, ";") {
		if e != "" && strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
