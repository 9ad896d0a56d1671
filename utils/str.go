package utils

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 文件名统一为NFC，macOS上读出的NFD名称与其他平台排序一致
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}

// 后缀匹配（不区分大小写）
func HasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
