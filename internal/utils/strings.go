package utils

import (
	"strconv"
	"unicode/utf8"
)

// Substr 按字符（而不是字节）截取，用于日志中展示正文摘要
func Substr(s string, start int, length int) string {
	runes := []rune(s)
	n := utf8.RuneCountInString(s)
	if start < 0 || start >= n || length <= 0 {
		return ""
	}
	end := start + length
	if end > n {
		end = n
	}
	return string(runes[start:end])
}

func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func FormatIDs(ids []int64) []string {
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		res = append(res, FormatID(id))
	}
	return res
}
