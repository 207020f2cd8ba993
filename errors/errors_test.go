package dailyfeed

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

// 错误信息会直接返回给前端，统一使用中文
func TestMessagesAreChinese(t *testing.T) {
	all := []error{
		ErrInvalidToken, ErrExpiredToken, ErrInvalidParam, ErrTimeout, ErrForbidden,
		ErrPostNotFound,
		ErrCommentNotFound, ErrParentNotFound, ErrDepthLimitExceeded, ErrParentPostMismatch,
		ErrAlreadyLiked, ErrLikeNotFound,
		ErrMirrorNotFound, ErrMirrorConflict,
		ErrPublishFailed, ErrPublishAndFallbackFailed, ErrTooManyRequests,
	}
	seen := make(map[string]bool, len(all))
	for _, err := range all {
		msg := strings.ReplaceAll(err.Error(), "Token", "")
		for _, r := range msg {
			assert.False(t, r < unicode.MaxASCII && unicode.IsLetter(r), "%q", err.Error())
		}
		assert.False(t, seen[err.Error()], "duplicated message %q", err.Error())
		seen[err.Error()] = true
	}
}
