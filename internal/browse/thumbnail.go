package browse

import (
	"regexp"
	"strings"
	"time"

	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/record"
	"github.com/sooperboring/content-studio/internal/remote"
)

// PlaceholderImage is shown when a record has no derivable thumbnail.
const PlaceholderImage = "https://placehold.co/320x180/eeeeee/cccccc?text=No+Image"

// youtubeIDPattern extracts the video id from watch and short-link URLs.
var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/.*v=|youtu\.be/)([^&?/]+)`)

// IsYouTube reports whether a video URL points at YouTube.
func IsYouTube(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

// YouTubeID returns the video id of a YouTube URL, or "".
func YouTubeID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ThumbnailURL derives the list thumbnail of a record. Videos prefer the
// YouTube medium-quality thumbnail, then an explicit thumbnail_url; other
// types use image_url. Bare storage paths are resolved against the type's
// bucket, absolute URLs pass through, and everything else falls back to the
// placeholder.
func ThumbnailURL(svc remote.Service, typ catalog.Type, rec record.Record) string {
	if typ.Name == catalog.Videos.Name {
		if id := YouTubeID(rec.String("video_url")); id != "" {
			return "https://img.youtube.com/vi/" + id + "/mqdefault.jpg"
		}
		return resolve(svc, catalog.BucketVideoThumbnails, rec.String("thumbnail_url"))
	}
	return resolve(svc, typ.Bucket, rec.String("image_url"))
}

func resolve(svc remote.Service, bucket, value string) string {
	switch {
	case value == "":
		return PlaceholderImage
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
		return value
	case bucket != "":
		return svc.PublicURL(bucket, value)
	default:
		return PlaceholderImage
	}
}

// ItemTitle returns the display title of a record: title, then name, then
// company, then a fallback.
func ItemTitle(rec record.Record) string {
	for _, field := range []string{"title", "name", "company"} {
		if v := rec.String(field); v != "" {
			return v
		}
	}
	return "Untitled"
}

// ItemSubtitle returns the secondary display line per entity type.
func ItemSubtitle(typ catalog.Type, rec record.Record) string {
	switch typ.Name {
	case catalog.Articles.Name:
		return rec.String("author")
	case catalog.Jobs.Name:
		return rec.String("company")
	case catalog.Theories.Name:
		return rec.String("category")
	case catalog.Spotlights.Name:
		return rec.String("company")
	default:
		return formatDate(rec.String("created_at"))
	}
}

func formatDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}
