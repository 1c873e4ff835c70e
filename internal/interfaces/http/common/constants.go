package common

const (
	// MaxRequestBody limits JSON request bodies for submission endpoints.
	MaxRequestBody = 1 << 20
	// MaxImportBody limits CSV import payloads.
	MaxImportBody = 5 << 20
	// MaxDescriptionRunes limits restaurant description length to keep payloads sane.
	MaxDescriptionRunes = 2000
	// MaxCommentRunes limits review comments.
	MaxCommentRunes = 4000
)
