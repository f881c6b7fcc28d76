package szurubooru

import "strings"

// QueryToken is one term of a search query, such as `safety:safe` or
// `sort:random`. Tokens are joined with spaces to form the `query`
// parameter of list endpoints.
type QueryToken struct {
	// Key is the part before the colon. For `foo:bar` this is `foo`.
	Key string
	// Value is the part after the colon. For `foo:bar` this is `bar`.
	// Empty for anonymous and special tokens.
	Value string
}

var tokenEscaper = strings.NewReplacer(":", `\:`, "-", `\-`)

// Token builds a named token of the form `key:value`. Colons and dashes
// in the value are escaped with a backslash so the server treats them as
// literal characters. The key is used verbatim; pass one of the token
// name constants (TagTokenName, PostTokenSafety, ...) or any custom key.
func Token(key, value string) QueryToken {
	return QueryToken{Key: key, Value: tokenEscaper.Replace(value)}
}

// SortToken builds a `sort:value` token. The value is not escaped.
func SortToken(value string) QueryToken {
	return QueryToken{Key: "sort", Value: value}
}

// AnonymousToken builds a bare token with no value. What it matches
// depends on the resource being listed; for posts it matches tags.
// Colons and dashes in the key are escaped.
func AnonymousToken(key string) QueryToken {
	return QueryToken{Key: tokenEscaper.Replace(key)}
}

// SpecialToken builds a bare token from one of the special token names
// (PostSpecialLiked, PostSpecialTumbleweed, ...).
func SpecialToken(key string) QueryToken {
	return AnonymousToken(key)
}

// Negate flips the token between include and exclude by toggling a
// leading `-` on the key. Negating twice returns the original token.
func (t QueryToken) Negate() QueryToken {
	if strings.HasPrefix(t.Key, "-") {
		return QueryToken{Key: t.Key[1:], Value: t.Value}
	}
	return QueryToken{Key: "-" + t.Key, Value: t.Value}
}

// String renders the token as it appears in a query: `key:value`, or
// just `key` when the value is empty.
func (t QueryToken) String() string {
	if t.Value == "" {
		return t.Key
	}
	return t.Key + ":" + t.Value
}

// QueryString joins tokens with spaces into the `query` parameter value.
func QueryString(tokens []QueryToken) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

// Named tokens accepted when listing tags.
const (
	TagTokenName             = "name"
	TagTokenCategory         = "category"
	TagTokenCreationDate     = "creation-date"
	TagTokenLastEditDate     = "last-edit-date"
	TagTokenLastEditTime     = "last-edit-time"
	TagTokenEditDate         = "edit-date"
	TagTokenEditTime         = "edit-time"
	TagTokenUsages           = "usages"
	TagTokenUsageCount       = "usage-count"
	TagTokenPostCount        = "post-count"
	TagTokenSuggestionCount  = "suggestion-count"
	TagTokenImplicationCount = "implication-count"
)

// Sort orders accepted when listing tags.
const (
	TagSortRandom           = "random"
	TagSortName             = "name"
	TagSortCategory         = "category"
	TagSortCreationDate     = "creation-date"
	TagSortCreationTime     = "creation-time"
	TagSortLastEditDate     = "last-edit-date"
	TagSortLastEditTime     = "last-edit-time"
	TagSortEditDate         = "edit-date"
	TagSortEditTime         = "edit-time"
	TagSortUsages           = "usages"
	TagSortUsageCount       = "usage-count"
	TagSortPostCount        = "post-count"
	TagSortSuggestionCount  = "suggestion-count"
	TagSortImplicationCount = "implication-count"
)

// Named tokens accepted when listing posts.
const (
	PostTokenID               = "id"
	PostTokenTag              = "tag"
	PostTokenScore            = "score"
	PostTokenUploader         = "uploader"
	PostTokenUpload           = "upload"
	PostTokenSubmit           = "submit"
	PostTokenComment          = "comment"
	PostTokenFav              = "fav"
	PostTokenPool             = "pool"
	PostTokenTagCount         = "tag-count"
	PostTokenCommentCount     = "comment-count"
	PostTokenFavCount         = "fav-count"
	PostTokenNoteCount        = "note-count"
	PostTokenNoteText         = "note-text"
	PostTokenRelationCount    = "relation-count"
	PostTokenFeatureCount     = "feature-count"
	PostTokenType             = "type"
	PostTokenContentChecksum  = "content-checksum"
	PostTokenFileSize         = "file-size"
	PostTokenImageWidth       = "image-width"
	PostTokenImageHeight      = "image-height"
	PostTokenImageArea        = "image-area"
	PostTokenImageAspectRatio = "image-aspect-ratio"
	PostTokenImageAr          = "image-ar"
	PostTokenWidth            = "width"
	PostTokenHeight           = "height"
	PostTokenAr               = "ar"
	PostTokenAspectRatio      = "aspect-ratio"
	PostTokenCreationDate     = "creation-date"
	PostTokenCreationTime     = "creation-time"
	PostTokenDate             = "date"
	PostTokenTime             = "time"
	PostTokenLastEditDate     = "last-edit-date"
	PostTokenLastEditTime     = "last-edit-time"
	PostTokenEditDate         = "edit-date"
	PostTokenEditTime         = "edit-time"
	PostTokenCommentDate      = "comment-date"
	PostTokenCommentTime      = "comment-time"
	PostTokenFavDate          = "fav-date"
	PostTokenFavTime          = "fav-time"
	PostTokenFeatureDate      = "feature-date"
	PostTokenFeatureTime      = "feature-time"
	PostTokenSafety           = "safety"
	PostTokenRating           = "rating"
)

// Sort orders accepted when listing posts.
const (
	PostSortRandom        = "random"
	PostSortID            = "id"
	PostSortScore         = "score"
	PostSortTagCount      = "tag-count"
	PostSortCommentCount  = "comment-count"
	PostSortFavCount      = "fav-count"
	PostSortNoteCount     = "note-count"
	PostSortRelationCount = "relation-count"
	PostSortFeatureCount  = "feature-count"
	PostSortFileSize      = "file-size"
	PostSortImageWidth    = "image-width"
	PostSortImageHeight   = "image-height"
	PostSortImageArea     = "image-area"
	PostSortWidth         = "width"
	PostSortHeight        = "height"
	PostSortArea          = "area"
	PostSortCreationDate  = "creation-date"
	PostSortCreationTime  = "creation-time"
	PostSortDate          = "date"
	PostSortTime          = "time"
	PostSortLastEditDate  = "last-edit-date"
	PostSortLastEditTime  = "last-edit-time"
	PostSortEditDate      = "edit-date"
	PostSortEditTime      = "edit-time"
	PostSortCommentDate   = "comment-date"
	PostSortCommentTime   = "comment-time"
	PostSortFavDate       = "fav-date"
	PostSortFavTime       = "fav-time"
	PostSortFeatureDate   = "feature-date"
	PostSortFeatureTime   = "feature-time"
)

// Special tokens accepted when listing posts. They relate the results to
// the authenticated user.
const (
	PostSpecialLiked      = "liked"
	PostSpecialDisliked   = "disliked"
	PostSpecialFav        = "fav"
	PostSpecialTumbleweed = "tumbleweed"
)

// Named tokens accepted when listing pools.
const (
	PoolTokenName         = "name"
	PoolTokenCategory     = "category"
	PoolTokenCreationDate = "creation-date"
	PoolTokenCreationTime = "creation-time"
	PoolTokenLastEditDate = "last-edit-date"
	PoolTokenLastEditTime = "last-edit-time"
	PoolTokenEditDate     = "edit-date"
	PoolTokenEditTime     = "edit-time"
	PoolTokenPostCount    = "post-count"
)

// Sort orders accepted when listing pools.
const (
	PoolSortRandom       = "random"
	PoolSortName         = "name"
	PoolSortCategory     = "category"
	PoolSortCreationDate = "creation-date"
	PoolSortCreationTime = "creation-time"
	PoolSortLastEditDate = "last-edit-date"
	PoolSortLastEditTime = "last-edit-time"
	PoolSortEditDate     = "edit-date"
	PoolSortEditTime     = "edit-time"
	PoolSortPostCount    = "post-count"
)

// Named tokens accepted when listing comments.
const (
	CommentTokenID           = "id"
	CommentTokenPost         = "post"
	CommentTokenUser         = "user"
	CommentTokenAuthor       = "author"
	CommentTokenText         = "text"
	CommentTokenCreationDate = "creation-date"
	CommentTokenCreationTime = "creation-time"
	CommentTokenLastEditDate = "last-edit-date"
	CommentTokenLastEditTime = "last-edit-time"
	CommentTokenEditDate     = "edit-date"
	CommentTokenEditTime     = "edit-time"
)

// Sort orders accepted when listing comments.
const (
	CommentSortRandom       = "random"
	CommentSortUser         = "user"
	CommentSortAuthor       = "author"
	CommentSortPost         = "post"
	CommentSortCreationDate = "creation-date"
	CommentSortCreationTime = "creation-time"
	CommentSortLastEditDate = "last-edit-date"
	CommentSortLastEditTime = "last-edit-time"
	CommentSortEditDate     = "edit-date"
	CommentSortEditTime     = "edit-time"
)

// Named tokens accepted when listing users. Not related to the
// UserToken resource.
const (
	UserTokenName          = "name"
	UserTokenCreationDate  = "creation-date"
	UserTokenCreationTime  = "creation-time"
	UserTokenLastLoginDate = "last-login-date"
	UserTokenLastLoginTime = "last-login-time"
	UserTokenLoginDate     = "login-date"
	UserTokenLoginTime     = "login-time"
)

// Sort orders accepted when listing users.
const (
	UserSortRandom        = "random"
	UserSortName          = "name"
	UserSortCreationDate  = "creation-date"
	UserSortCreationTime  = "creation-time"
	UserSortLastLoginDate = "last-login-date"
	UserSortLastLoginTime = "last-login-time"
	UserSortLoginDate     = "login-date"
	UserSortLoginTime     = "login-time"
)

// Named tokens accepted when listing snapshots.
const (
	SnapshotTokenType      = "type"
	SnapshotTokenID        = "id"
	SnapshotTokenDate      = "date"
	SnapshotTokenTime      = "time"
	SnapshotTokenOperation = "operation"
	SnapshotTokenUser      = "user"
)
