package szurubooru

import "strings"

// The server returns contentUrl, thumbnailUrl and avatarUrl relative
// to the data directory. Decoded resources are rewritten in place so
// these fields hold absolute URLs under the client's base URL. The
// rewrite is idempotent: a URL that already contains the base is left
// alone.

func rebaseURL(base, u string) string {
	if u == "" || strings.Contains(u, base) {
		return u
	}
	if strings.HasPrefix(u, "/") {
		return base + u
	}
	return base + "/" + u
}

func (p *MicroPost) propagateURLs(base string) {
	p.ThumbnailURL = rebaseURL(base, p.ThumbnailURL)
}

func (u *MicroUser) propagateURLs(base string) {
	u.AvatarURL = rebaseURL(base, u.AvatarURL)
}

func (u *User) propagateURLs(base string) {
	u.AvatarURL = rebaseURL(base, u.AvatarURL)
}

func (p *Post) propagateURLs(base string) {
	p.ContentURL = rebaseURL(base, p.ContentURL)
	p.ThumbnailURL = rebaseURL(base, p.ThumbnailURL)
	if p.User != nil {
		p.User.propagateURLs(base)
	}
	for i := range p.Relations {
		p.Relations[i].propagateURLs(base)
	}
	for i := range p.FavoritedBy {
		p.FavoritedBy[i].propagateURLs(base)
	}
	for i := range p.Pools {
		p.Pools[i].propagateURLs(base)
	}
	for i := range p.Comments {
		p.Comments[i].propagateURLs(base)
	}
}

func (p *Pool) propagateURLs(base string) {
	for i := range p.Posts {
		p.Posts[i].propagateURLs(base)
	}
}

func (c *Comment) propagateURLs(base string) {
	if c.User != nil {
		c.User.propagateURLs(base)
	}
}

func (t *UserToken) propagateURLs(base string) {
	if t.User != nil {
		t.User.propagateURLs(base)
	}
}

func (s *Snapshot) propagateURLs(base string) {
	if s.User != nil {
		s.User.propagateURLs(base)
	}
	if s.Data != nil {
		if s.Data.Post != nil {
			s.Data.Post.propagateURLs(base)
		}
		if s.Data.Pool != nil {
			s.Data.Pool.propagateURLs(base)
		}
	}
}

func (r *ImageSearchResult) propagateURLs(base string) {
	if r.ExactPost != nil {
		r.ExactPost.propagateURLs(base)
	}
	for i := range r.SimilarPosts {
		r.SimilarPosts[i].Post.propagateURLs(base)
	}
}
