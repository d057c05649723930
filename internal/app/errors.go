package app

import (
	"errors"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/domain"
)

// Codes d'erreur stables exposés par l'API (champ "code").
const (
	CodeUnknownShow   = "unknown_show"
	CodeFetchFailed   = "fetch_failed"
	CodeParseFailed   = "feed_parse_failed"
	CodeClipboard     = "clipboard_failed"
	CodeStorage       = "storage_failed"
	CodeInvalidIndex  = "invalid_index"
	CodeInternalError = "internal_error"
)

// ErrorCode renvoie le code stable associé à err.
func ErrorCode(err error) string {
	var (
		unknown   *domain.UnknownShowError
		fetch     *domain.FetchError
		parse     *domain.FeedParseError
		clipboard *domain.ClipboardWriteError
		storage   *domain.StorageError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unknown):
		return CodeUnknownShow
	case errors.As(err, &parse):
		return CodeParseFailed
	case errors.As(err, &fetch):
		return CodeFetchFailed
	case errors.As(err, &clipboard):
		return CodeClipboard
	case errors.As(err, &storage):
		return CodeStorage
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return CodeInvalidIndex
	default:
		return CodeInternalError
	}
}
