package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Payload is a loosely typed post object as decoded from the API.
type Payload map[string]any

// Field aliases, already in canonical (lowercase, no separators) form.
var (
	idKeys        = []string{"id", "_id", "postid", "replyid"}
	tweetIDKeys   = []string{"tweetid"}
	threadKeys    = []string{"threadid", "rootid"}
	parentKeys    = []string{"parentreplyid", "parentid", "inreplytoid", "replytoid"}
	contentKeys   = []string{"content", "text", "body", "message"}
	createdKeys   = []string{"createdat", "timestamp", "date", "postedat"}
	authorObjKeys = []string{"author", "user", "owner"}
	attachKeys    = []string{"attachments", "media", "images"}

	authorIDKeys      = []string{"userid", "authorid"}
	usernameKeys      = []string{"username", "handle", "screenname", "login"}
	displayNameKeys   = []string{"displayname", "name", "fullname", "authorname"}
	avatarKeys        = []string{"avatar", "profilepictureurl", "avatarurl", "profileimageurl", "profilepicture", "picture"}
	verifiedKeys      = []string{"verified", "isverified", "ispremium", "premium"}
	nestedScopeKeys   = []string{"stats", "metrics", "publicmetrics", "counts", "viewer"}
	likesKeys         = []string{"likescount", "likecount", "likes", "favoritecount", "favoritescount"}
	repliesKeys       = []string{"repliescount", "replycount", "replies", "commentscount"}
	repostsKeys       = []string{"repostscount", "retweetscount", "retweetcount", "repostcount", "reposts", "retweets"}
	bookmarksKeys     = []string{"bookmarkscount", "bookmarkcount", "bookmarks"}
	viewsKeys         = []string{"viewscount", "viewcount", "views", "impressions"}
	likedKeys         = []string{"isliked", "liked", "favorited", "hasliked"}
	bookmarkedKeys    = []string{"isbookmarked", "bookmarked", "hasbookmarked"}
	attachmentURLKeys = []string{"url", "src", "previewurl"}
)

// NormalizePost fills a Post from p, filling defaults for everything
// missing. It never fails; a nil payload yields a Partial zero post.
func NormalizePost(p Payload) Post {
	fields := index(p)
	scopes := []map[string]any{fields}
	for _, k := range nestedScopeKeys {
		if sub, ok := asPayload(fields[k]); ok {
			scopes = append(scopes, index(sub))
		}
	}

	post := Post{
		ID:            lookupString(scopes, idKeys),
		ParentReplyID: lookupString(scopes, parentKeys),
		Content:       lookupString(scopes, contentKeys),
		CreatedAt:     lookupTime(scopes, createdKeys),
		Attachments:   lookupAttachments(fields),

		LikesCount:     lookupCount(scopes, likesKeys),
		RepliesCount:   lookupCount(scopes, repliesKeys),
		RepostsCount:   lookupCount(scopes, repostsKeys),
		BookmarksCount: lookupCount(scopes, bookmarksKeys),
		ViewsCount:     lookupCount(scopes, viewsKeys),

		Liked:      lookupBool(scopes, likedKeys),
		Bookmarked: lookupBool(scopes, bookmarkedKeys),
	}
	// tweet_id is the post's own id only when nothing else names it;
	// next to another id it points at the thread.
	tweetID := lookupString(scopes, tweetIDKeys)
	if post.ID == "" {
		post.ID, tweetID = tweetID, ""
	}
	post.ThreadID = lookupString(scopes, threadKeys)
	if post.ThreadID == "" {
		post.ThreadID = tweetID
	}
	if post.ThreadID == post.ID {
		post.ThreadID = ""
	}

	post.Author = normalizeAuthor(fields)
	if post.ID == "" || post.Author.Username == "" {
		post.Partial = true
	}
	if post.Author.Username == "" {
		post.Author.Username = "unknown"
	}
	if post.Author.DisplayName == "" {
		post.Author.DisplayName = post.Author.Username
	}
	if post.Author.AvatarURL == "" {
		post.Author.AvatarURL = DefaultAvatarURL
	}
	return post
}

// NormalizePosts maps every payload, preserving order.
func NormalizePosts(in []Payload) []Post {
	out := make([]Post, 0, len(in))
	for _, p := range in {
		out = append(out, NormalizePost(p))
	}
	return out
}

func normalizeAuthor(fields map[string]any) Author {
	var scopes []map[string]any
	for _, k := range authorObjKeys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if sub, ok := asPayload(v); ok {
			scopes = append(scopes, index(sub))
			break
		}
		// A bare string author is a handle.
		if s, ok := asString(v); ok && s != "" {
			scopes = append(scopes, map[string]any{"username": s})
			break
		}
	}
	nested := scopes
	scopes = append(scopes, fields)

	a := Author{
		Username:    strings.TrimPrefix(lookupString(scopes, usernameKeys), "@"),
		DisplayName: lookupString(scopes, displayNameKeys),
		AvatarURL:   lookupString(scopes, avatarKeys),
		Verified:    lookupBool(scopes, verifiedKeys),
	}
	// Inside an author object "id" is the user's id; at the top level it is the post's.
	a.ID = lookupString(nested, append([]string{"id", "_id"}, authorIDKeys...))
	if a.ID == "" {
		a.ID = lookupString([]map[string]any{fields}, authorIDKeys)
	}
	return a
}

func canonKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for i, r := range strings.ToLower(k) {
		// Keep a leading underscore so "_id" stays distinct from "id".
		if (r == '_' && i > 0) || r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func index(p Payload) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		ck := canonKey(k)
		if _, dup := out[ck]; dup && v == nil {
			continue
		}
		out[ck] = v
	}
	return out
}

func lookup(scopes []map[string]any, keys []string) (any, bool) {
	for _, s := range scopes {
		for _, k := range keys {
			if v, ok := s[k]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

func lookupString(scopes []map[string]any, keys []string) string {
	for _, s := range scopes {
		for _, k := range keys {
			if v, ok := asString(s[k]); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

func lookupCount(scopes []map[string]any, keys []string) int {
	for _, s := range scopes {
		for _, k := range keys {
			if n, ok := asInt(s[k]); ok {
				return n
			}
		}
	}
	return 0
}

func lookupBool(scopes []map[string]any, keys []string) bool {
	for _, s := range scopes {
		for _, k := range keys {
			if b, ok := asBool(s[k]); ok {
				return b
			}
		}
	}
	return false
}

func lookupTime(scopes []map[string]any, keys []string) time.Time {
	for _, s := range scopes {
		for _, k := range keys {
			if t, ok := asTime(s[k]); ok {
				return t
			}
		}
	}
	return time.Time{}
}

func lookupAttachments(fields map[string]any) []string {
	v, ok := lookup([]map[string]any{fields}, attachKeys)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
			continue
		}
		if sub, ok := asPayload(item); ok {
			if s := lookupString([]map[string]any{index(sub)}, attachmentURLKeys); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func asPayload(v any) (Payload, bool) {
	switch t := v.(type) {
	case Payload:
		return t, true
	case map[string]any:
		return Payload(t), true
	}
	return nil, false
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

func asInt(v any) (int, bool) {
	var n float64
	switch t := v.(type) {
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case int32:
		n = float64(t)
	case float64:
		n = t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	case []any:
		return len(t), true
	default:
		return 0, false
	}
	if math.IsNaN(n) || n <= 0 {
		return 0, true
	}
	if n >= math.MaxInt {
		return math.MaxInt, true
	}
	return int(n), true
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y":
			return true, true
		case "false", "0", "no", "n", "":
			return false, true
		}
		return false, false
	}
	if n, ok := asInt(v); ok {
		if _, isList := v.([]any); isList {
			return false, false
		}
		return n > 0, true
	}
	return false, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func asTime(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		v = f
	}
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int64:
		n = float64(t)
	case int:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		n = f
	default:
		return time.Time{}, false
	}
	if n <= 0 {
		return time.Time{}, false
	}
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Unix(int64(n), 0).UTC(), true
}
