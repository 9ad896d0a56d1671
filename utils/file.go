package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// 目标文件同目录下的唯一临时文件路径
func GetUniqTmpPath(dst, template string) string {
	return filepath.Join(filepath.Dir(dst), strings.Replace(template, "%s", uuid.NewString(), 1))
}

// 列出目录下（不递归）指定后缀的文件，按规范化文件名排序
func ListFilesByExt(dir string, exts []string) (paths []string, err error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, f := range files {
		if f.IsDir() || !HasExt(f.Name(), exts) {
			continue
		}
		paths = append(paths, filepath.Join(dir, f.Name()))
	}
	sort.SliceStable(paths, func(i, j int) bool {
		return NormalizeName(filepath.Base(paths[i])) < NormalizeName(filepath.Base(paths[j]))
	})
	return
}

// 写入文件：先写临时文件再重命名，避免留下半个文件
func WriteFileAtomic(dst, tmpTemplate string, data []byte) (err error) {
	if err = os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return
	}
	tmp := GetUniqTmpPath(dst, tmpTemplate)
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return
	}
	if err = os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
	}
	return
}
