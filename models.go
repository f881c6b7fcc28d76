package szurubooru

import (
	"bytes"
	"encoding/json"
	"time"
)

// Private is a field the server masks depending on who is asking. When
// the requester lacks permission the server sends `false` instead of
// the value; Visible reports whether the value was actually revealed.
type Private[T any] struct {
	Value   T
	Visible bool
}

// Get returns the value and whether the server revealed it.
func (p Private[T]) Get() (T, bool) {
	return p.Value, p.Visible
}

func (p *Private[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Private[T]{}
		return nil
	}
	var masked bool
	if err := json.Unmarshal(data, &masked); err == nil {
		*p = Private[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Private[T]{Value: v, Visible: true}
	return nil
}

func (p Private[T]) MarshalJSON() ([]byte, error) {
	if !p.Visible {
		return []byte("false"), nil
	}
	return json.Marshal(p.Value)
}

// UnpagedResult is the envelope of list endpoints that do not page.
type UnpagedResult[T any] struct {
	Results []T `json:"results"`
}

// PagedResult is the envelope of list endpoints that page. Fetch the
// next page by repeating the request with a larger offset.
type PagedResult[T any] struct {
	Query   string `json:"query"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
	Total   int    `json:"total"`
	Results []T    `json:"results"`
}

// ResourceVersion is the optimistic-lock body sent with DELETE
// requests. The version must match the one returned by the last GET,
// otherwise the server rejects the request.
type ResourceVersion struct {
	Version int `json:"version"`
}

// MicroTag is a tag stripped down to names, category and usage count.
type MicroTag struct {
	Names    []string `json:"names"`
	Category string   `json:"category"`
	Usages   int      `json:"usages"`
}

// Tag is a single tag. Tags are used to let users search for posts.
type Tag struct {
	Version      int        `json:"version,omitempty"`
	Names        []string   `json:"names,omitempty"`
	Category     string     `json:"category,omitempty"`
	Implications []MicroTag `json:"implications,omitempty"`
	Suggestions  []MicroTag `json:"suggestions,omitempty"`
	CreationTime *time.Time `json:"creationTime,omitempty"`
	LastEditTime *time.Time `json:"lastEditTime,omitempty"`
	Usages       int        `json:"usages,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// CreateUpdateTag is the body for creating or updating a tag. Version
// is required only when updating.
type CreateUpdateTag struct {
	Version      int      `json:"version,omitempty"`
	Names        []string `json:"names,omitempty"`
	Category     string   `json:"category,omitempty"`
	Description  string   `json:"description,omitempty"`
	Implications []string `json:"implications,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// TagCategory distinguishes tag types such as characters or media.
type TagCategory struct {
	Version int    `json:"version,omitempty"`
	Name    string `json:"name,omitempty"`
	Color   string `json:"color,omitempty"`
	Usages  int    `json:"usages,omitempty"`
	Order   int    `json:"order,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// CreateUpdateTagCategory is the body for creating or updating a tag
// category.
type CreateUpdateTagCategory struct {
	Version int    `json:"version,omitempty"`
	Name    string `json:"name,omitempty"`
	Color   string `json:"color,omitempty"`
	Order   int    `json:"order,omitempty"`
}

// MergeTags removes the source tag and moves its usages, suggestions
// and implications to the target tag.
type MergeTags struct {
	RemoveVersion  int    `json:"removeVersion"`
	Remove         string `json:"remove"`
	MergeToVersion int    `json:"mergeToVersion"`
	MergeTo        string `json:"mergeTo"`
}

// TagSibling is a tag that occurs in the same posts as another tag.
type TagSibling struct {
	Tag         Tag `json:"tag"`
	Occurrences int `json:"occurrences"`
}

// PostType is the content kind of a post.
type PostType string

// Post content kinds.
const (
	PostTypeImage     PostType = "image"
	PostTypeAnimation PostType = "animation"
	PostTypeAnimated  PostType = "animated"
	PostTypeAnim      PostType = "anim"
	PostTypeFlash     PostType = "flash"
	PostTypeSwf       PostType = "swf"
	PostTypeVideo     PostType = "video"
	PostTypeWebm      PostType = "webm"
)

// PostSafety is how SFW/NSFW a post is.
type PostSafety string

// Post safety ratings.
const (
	SafetySafe         PostSafety = "safe"
	SafetySketchy      PostSafety = "sketchy"
	SafetyQuestionable PostSafety = "questionable"
	SafetyUnsafe       PostSafety = "unsafe"
)

// MicroPost is a post stripped down to id and thumbnail URL.
type MicroPost struct {
	ID           int    `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Note is a text annotation rendered on top of a post. Polygon points
// use coordinates within 0 to 1.
type Note struct {
	Polygon [][]float64 `json:"polygon"`
	Text    string      `json:"text"`
}

// MicroUser is a user stripped down to name and avatar URL.
type MicroUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// Post is a single post.
type Post struct {
	Version            int         `json:"version,omitempty"`
	ID                 int         `json:"id,omitempty"`
	CreationTime       *time.Time  `json:"creationTime,omitempty"`
	LastEditTime       *time.Time  `json:"lastEditTime,omitempty"`
	Safety             PostSafety  `json:"safety,omitempty"`
	Type               PostType    `json:"type,omitempty"`
	Source             string      `json:"source,omitempty"`
	Checksum           string      `json:"checksum,omitempty"`
	ChecksumMD5        string      `json:"checksumMD5,omitempty"`
	CanvasWidth        int         `json:"canvasWidth,omitempty"`
	CanvasHeight       int         `json:"canvasHeight,omitempty"`
	ContentURL         string      `json:"contentUrl,omitempty"`
	ThumbnailURL       string      `json:"thumbnailUrl,omitempty"`
	Flags              []string    `json:"flags,omitempty"`
	Tags               []MicroTag  `json:"tags,omitempty"`
	Relations          []MicroPost `json:"relations,omitempty"`
	Notes              []Note      `json:"notes,omitempty"`
	User               *MicroUser  `json:"user,omitempty"`
	Score              int         `json:"score,omitempty"`
	OwnScore           int         `json:"ownScore,omitempty"`
	OwnFavorite        bool        `json:"ownFavorite,omitempty"`
	TagCount           int         `json:"tagCount,omitempty"`
	FavoriteCount      int         `json:"favoriteCount,omitempty"`
	CommentCount       int         `json:"commentCount,omitempty"`
	NoteCount          int         `json:"noteCount,omitempty"`
	FeatureCount       int         `json:"featureCount,omitempty"`
	RelationCount      int         `json:"relationCount,omitempty"`
	LastFeatureTime    *time.Time  `json:"lastFeatureTime,omitempty"`
	FavoritedBy        []MicroUser `json:"favoritedBy,omitempty"`
	HasCustomThumbnail bool        `json:"hasCustomThumbnail,omitempty"`
	MimeType           string      `json:"mimeType,omitempty"`
	Comments           []Comment   `json:"comment,omitempty"`
	Pools              []Pool      `json:"pools,omitempty"`
}

// CreateUpdatePost is the body for creating or updating a post. Safety
// is required when creating; Version is required when updating.
// Exactly one of ContentURL, ContentToken or an uploaded file supplies
// the content for new posts.
type CreateUpdatePost struct {
	Version      int        `json:"version,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Safety       PostSafety `json:"safety,omitempty"`
	Source       string     `json:"source,omitempty"`
	Relations    []int      `json:"relations,omitempty"`
	Notes        []Note     `json:"notes,omitempty"`
	Flags        []string   `json:"flags,omitempty"`
	ContentURL   string     `json:"contentUrl,omitempty"`
	ContentToken string     `json:"contentToken,omitempty"`
	Anonymous    bool       `json:"anonymous,omitempty"`
}

// TemporaryUpload is the token assigned to a file placed in temporary
// storage.
type TemporaryUpload struct {
	Token string `json:"token"`
}

// MergePosts removes the source post and moves its tags, relations,
// scores, favorites and comments to the target post.
type MergePosts struct {
	RemoveVersion  int  `json:"removeVersion"`
	Remove         int  `json:"remove"`
	MergeToVersion int  `json:"mergeToVersion"`
	MergeTo        int  `json:"mergeTo"`
	ReplaceContent bool `json:"replaceContent"`
}

type rateRequest struct {
	Score int `json:"score"`
}

type postIDRequest struct {
	ID int `json:"id"`
}

// UserRank determines a user's privileges.
type UserRank string

// User ranks.
const (
	RankRestricted    UserRank = "restricted"
	RankRegular       UserRank = "regular"
	RankPower         UserRank = "power"
	RankModerator     UserRank = "moderator"
	RankAdministrator UserRank = "administrator"
)

// UserAvatarStyle is how a user's avatar is produced.
type UserAvatarStyle string

// Avatar styles.
const (
	AvatarGravatar UserAvatarStyle = "gravatar"
	AvatarManual   UserAvatarStyle = "manual"
)

// User is a single user. Email and the per-user post counts are only
// revealed to the user themselves or privileged accounts.
type User struct {
	Version           int             `json:"version,omitempty"`
	Name              string          `json:"name,omitempty"`
	Email             Private[string] `json:"email,omitzero"`
	Rank              UserRank        `json:"rank,omitempty"`
	LastLoginTime     *time.Time      `json:"last-login-time,omitempty"`
	CreationTime      *time.Time      `json:"creation-time,omitempty"`
	AvatarStyle       UserAvatarStyle `json:"avatarStyle,omitempty"`
	AvatarURL         string          `json:"avatarUrl,omitempty"`
	CommentCount      int             `json:"comment-count,omitempty"`
	UploadedPostCount int             `json:"uploaded-post-count,omitempty"`
	LikedPostCount    Private[int]    `json:"liked-post-count,omitzero"`
	DislikedPostCount Private[int]    `json:"disliked-post-count,omitzero"`
	FavoritePostCount Private[int]    `json:"favorite-post-count,omitzero"`
}

// CreateUpdateUser is the body for creating or updating a user.
// Version is required only when updating. The manual avatar style
// requires an avatar file to be uploaded alongside.
type CreateUpdateUser struct {
	Version     int             `json:"version,omitempty"`
	Name        string          `json:"name,omitempty"`
	Password    string          `json:"password,omitempty"`
	Rank        UserRank        `json:"rank,omitempty"`
	AvatarStyle UserAvatarStyle `json:"avatarStyle,omitempty"`
}

// UserToken authenticates a user in place of their password.
type UserToken struct {
	User           *MicroUser `json:"user,omitempty"`
	Token          string     `json:"token,omitempty"`
	Note           string     `json:"note,omitempty"`
	Enabled        bool       `json:"enabled,omitempty"`
	ExpirationTime *time.Time `json:"expiration-time,omitempty"`
	Version        int        `json:"version,omitempty"`
	CreationTime   *time.Time `json:"creation-time,omitempty"`
	LastEditTime   *time.Time `json:"last-edit-time,omitempty"`
	LastUsageTime  *time.Time `json:"last-usage-time,omitempty"`
}

// CreateUpdateUserToken is the body for creating or updating a user
// token. Version is required only when updating.
type CreateUpdateUserToken struct {
	Version        int        `json:"version,omitempty"`
	Enabled        *bool      `json:"enabled,omitempty"`
	Note           string     `json:"note,omitempty"`
	ExpirationTime *time.Time `json:"expiration-time,omitempty"`
}

type passwordResetRequest struct {
	Token string `json:"token"`
}

// TemporaryPassword is the replacement password generated by a
// confirmed password reset.
type TemporaryPassword struct {
	Password string `json:"password"`
}

// GlobalInfoConfig is the subset of server configuration exposed over
// the API.
type GlobalInfoConfig struct {
	UserNameRegex        string            `json:"userNameRegex"`
	PasswordRegex        string            `json:"passwordRegex"`
	TagNameRegex         string            `json:"tagNameRegex"`
	TagCategoryNameRegex string            `json:"tagCategoryNameRegex"`
	DefaultUserRank      string            `json:"defaultUserRank"`
	EnableSafety         bool              `json:"enableSafety"`
	ContactEmail         string            `json:"contactEmail,omitempty"`
	CanSendMails         bool              `json:"canSendMails"`
	Privileges           map[string]string `json:"privileges"`
}

// GlobalInfo is simple server statistics plus configuration.
type GlobalInfo struct {
	PostCount     int              `json:"postCount"`
	DiskUsage     int64            `json:"diskUsage"`
	FeaturedPost  *int             `json:"featuredPost,omitempty"`
	FeaturingTime *time.Time       `json:"featuringTime,omitempty"`
	FeaturingUser *int             `json:"featuringUser,omitempty"`
	ServerTime    time.Time        `json:"serverTime"`
	Config        GlobalInfoConfig `json:"config"`
}

// PoolCategory distinguishes pool types such as series or relations.
type PoolCategory struct {
	Version int    `json:"version,omitempty"`
	Name    string `json:"name,omitempty"`
	Color   string `json:"color,omitempty"`
	Usages  int    `json:"usages,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// CreateUpdatePoolCategory is the body for creating or updating a pool
// category.
type CreateUpdatePoolCategory struct {
	Version int    `json:"version,omitempty"`
	Name    string `json:"name,omitempty"`
	Color   string `json:"color,omitempty"`
}

// Pool is an ordered collection of posts.
type Pool struct {
	Version      int         `json:"version,omitempty"`
	ID           int         `json:"id,omitempty"`
	Names        []string    `json:"names,omitempty"`
	Category     string      `json:"category,omitempty"`
	Posts        []MicroPost `json:"posts,omitempty"`
	CreationTime *time.Time  `json:"creationTime,omitempty"`
	LastEditTime *time.Time  `json:"lastEditTime,omitempty"`
	PostCount    int         `json:"postCount,omitempty"`
	Description  string      `json:"description,omitempty"`
}

// MicroPool is a pool stripped down to identifying fields.
type MicroPool struct {
	ID          int      `json:"id,omitempty"`
	Names       []string `json:"names,omitempty"`
	Category    string   `json:"category,omitempty"`
	PostCount   int      `json:"postCount,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CreateUpdatePool is the body for creating or updating a pool.
// Version is required only when updating. Posts replaces the full
// post list on update.
type CreateUpdatePool struct {
	Version     int      `json:"version,omitempty"`
	Names       []string `json:"names,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Posts       []int    `json:"posts,omitempty"`
}

// MergePools removes the source pool and moves its posts to the target
// pool.
type MergePools struct {
	RemoveVersion  int `json:"removeVersion"`
	Remove         int `json:"remove"`
	MergeToVersion int `json:"mergeToVersion"`
	MergeTo        int `json:"mergeTo"`
}

// Comment is a single comment under a post.
type Comment struct {
	Version      int        `json:"version,omitempty"`
	ID           int        `json:"id,omitempty"`
	PostID       int        `json:"postId,omitempty"`
	User         *MicroUser `json:"user,omitempty"`
	Text         string     `json:"text,omitempty"`
	CreationTime *time.Time `json:"creationTime,omitempty"`
	LastEditTime *time.Time `json:"lastEditTime,omitempty"`
	Score        int        `json:"score,omitempty"`
	OwnScore     int        `json:"ownScore,omitempty"`
}

// CreateUpdateComment is the body for creating or updating a comment.
// PostID is used only when creating; Version only when updating.
type CreateUpdateComment struct {
	Version int    `json:"version,omitempty"`
	Text    string `json:"text"`
	PostID  int    `json:"postId,omitempty"`
}

// SnapshotOperation is the kind of change a snapshot records.
type SnapshotOperation string

// Snapshot operations.
const (
	SnapshotCreated  SnapshotOperation = "created"
	SnapshotModified SnapshotOperation = "modified"
	SnapshotDeleted  SnapshotOperation = "deleted"
	SnapshotMerged   SnapshotOperation = "merged"
)

// SnapshotResourceKind is the kind of resource a snapshot describes.
type SnapshotResourceKind string

// Snapshot resource kinds.
const (
	SnapshotKindTag          SnapshotResourceKind = "tag"
	SnapshotKindTagCategory  SnapshotResourceKind = "tag_category"
	SnapshotKindPost         SnapshotResourceKind = "post"
	SnapshotKindPool         SnapshotResourceKind = "pool"
	SnapshotKindPoolCategory SnapshotResourceKind = "pool_category"
)

// SnapshotModification is the data of a `modified` snapshot: a
// dictionary diff whose exact shape depends on the resource kind.
type SnapshotModification struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// SnapshotData is the payload of a snapshot. Exactly one group of
// fields is set depending on the operation: one of the typed resource
// fields for created/deleted snapshots, Modification for modified
// ones, Merge for merged ones. Raw holds the undecoded payload when
// the typed decode does not apply.
type SnapshotData struct {
	Tag          *Tag
	TagCategory  *TagCategory
	Post         *Post
	Pool         *Pool
	PoolCategory *PoolCategory
	Modification *SnapshotModification
	Merge        []json.RawMessage
	Raw          json.RawMessage
}

func (d SnapshotData) MarshalJSON() ([]byte, error) {
	switch {
	case d.Merge != nil:
		return json.Marshal(d.Merge)
	case d.Modification != nil:
		return json.Marshal(d.Modification)
	case d.Tag != nil:
		return json.Marshal(d.Tag)
	case d.TagCategory != nil:
		return json.Marshal(d.TagCategory)
	case d.Post != nil:
		return json.Marshal(d.Post)
	case d.Pool != nil:
		return json.Marshal(d.Pool)
	case d.PoolCategory != nil:
		return json.Marshal(d.PoolCategory)
	case d.Raw != nil:
		return d.Raw, nil
	default:
		return []byte("null"), nil
	}
}

// Snapshot records a change made to a resource.
type Snapshot struct {
	Operation SnapshotOperation    `json:"operation,omitempty"`
	Kind      SnapshotResourceKind `json:"type,omitempty"`
	ID        string               `json:"id,omitempty"`
	User      *MicroUser           `json:"user,omitempty"`
	Data      *SnapshotData        `json:"data,omitempty"`
	Time      *time.Time           `json:"time,omitempty"`
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type snapshot Snapshot
	aux := struct {
		*snapshot
		Data json.RawMessage `json:"data"`
	}{snapshot: (*snapshot)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Data) == 0 || bytes.Equal(aux.Data, []byte("null")) {
		s.Data = nil
		return nil
	}
	s.Data = decodeSnapshotData(s.Kind, aux.Data)
	return nil
}

// decodeSnapshotData picks the payload shape: a JSON array is a merge
// record, an object carrying `type` and `value` is a modification
// diff, anything else is the created or deleted resource itself. The
// raw payload is kept when the typed decode fails.
func decodeSnapshotData(kind SnapshotResourceKind, raw json.RawMessage) *SnapshotData {
	d := &SnapshotData{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(raw, &d.Merge); err != nil {
			d.Raw = raw
		}
		return d
	}

	var probe struct {
		Type  *string         `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Type != nil && probe.Value != nil {
		d.Modification = &SnapshotModification{Type: *probe.Type, Value: probe.Value}
		return d
	}

	var err error
	switch kind {
	case SnapshotKindTag:
		var v Tag
		if err = json.Unmarshal(raw, &v); err == nil {
			d.Tag = &v
		}
	case SnapshotKindTagCategory:
		var v TagCategory
		if err = json.Unmarshal(raw, &v); err == nil {
			d.TagCategory = &v
		}
	case SnapshotKindPost:
		var v Post
		if err = json.Unmarshal(raw, &v); err == nil {
			d.Post = &v
		}
	case SnapshotKindPool:
		var v Pool
		if err = json.Unmarshal(raw, &v); err == nil {
			d.Pool = &v
		}
	case SnapshotKindPoolCategory:
		var v PoolCategory
		if err = json.Unmarshal(raw, &v); err == nil {
			d.PoolCategory = &v
		}
	default:
		d.Raw = raw
		return d
	}
	if err != nil {
		d.Raw = raw
	}
	return d
}

// ImageSearchSimilarPost is a visually similar post found by reverse
// search, with its distance from the input image.
type ImageSearchSimilarPost struct {
	Distance float64 `json:"distance"`
	Post     Post    `json:"post"`
}

// ImageSearchResult is the outcome of a reverse image search.
type ImageSearchResult struct {
	ExactPost    *Post                    `json:"exactPost,omitempty"`
	SimilarPosts []ImageSearchSimilarPost `json:"similarPosts"`
}

// AroundPostResult holds the posts immediately before and after a
// post, when they exist.
type AroundPostResult struct {
	Prev *int `json:"prev"`
	Next *int `json:"next"`
}
