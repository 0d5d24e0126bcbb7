// Package catalog is the registry of content entity types and the per-type
// knowledge the browsing and editing layers need: table names, image buckets,
// search fields and payload schemas.
package catalog

// Storage bucket names, one per uploadable asset family.
const (
	BucketArticleImages     = "article-images"
	BucketJobImages         = "job-images"
	BucketTheoryImages      = "theory-images"
	BucketSpotlightImages   = "spotlight-images"
	BucketVideoThumbnails   = "video-thumbnails"
	BucketProfilePhotos     = "profile-photos"
	BucketProjectFolders    = "project-folders"
	BucketProjectThumbnails = "project-thumbnails"
)

// Type describes one content entity type.
type Type struct {
	Name   string // URL/API name, e.g. "articles"
	Label  string // display label, e.g. "Articles"
	Table  string // remote service table
	Bucket string // bucket for the type's primary image field

	// SearchFields are matched client-side with a case-insensitive
	// substring test on every filter change.
	SearchFields []string

	// ServerFiltered types push the search term to the remote service
	// instead of filtering the fetched collection locally.
	ServerFiltered     bool
	ServerFilterFields []string

	// Schema is the JSON Schema file validating create/update payloads.
	Schema string
}

var (
	// Articles is editorial content with an author and category.
	Articles = Type{
		Name:         "articles",
		Label:        "Articles",
		Table:        "articles",
		Bucket:       BucketArticleImages,
		SearchFields: []string{"title", "name", "company", "category", "author"},
		Schema:       "article.schema.json",
	}

	// Jobs are postings filtered at the service by title and description.
	Jobs = Type{
		Name:               "jobs",
		Label:              "Jobs",
		Table:              "jobs",
		Bucket:             BucketJobImages,
		SearchFields:       []string{"title", "name", "company", "category", "author"},
		ServerFiltered:     true,
		ServerFilterFields: []string{"title", "description"},
		Schema:             "job.schema.json",
	}

	// Theories are reference write-ups on learning theory.
	Theories = Type{
		Name:               "theories",
		Label:              "Theories",
		Table:              "theories",
		Bucket:             BucketTheoryImages,
		SearchFields:       []string{"title", "name", "company", "category", "author"},
		ServerFiltered:     true,
		ServerFilterFields: []string{"title", "description"},
		Schema:             "theory.schema.json",
	}

	// Videos resolve thumbnails from the hosting platform when possible.
	Videos = Type{
		Name:         "videos",
		Label:        "Videos",
		Table:        "videos",
		Bucket:       BucketVideoThumbnails,
		SearchFields: []string{"title", "name", "company", "category", "author"},
		Schema:       "video.schema.json",
	}

	// Spotlights are featured designer write-ups.
	Spotlights = Type{
		Name:               "spotlights",
		Label:              "Spotlights",
		Table:              "spotlights",
		Bucket:             BucketSpotlightImages,
		SearchFields:       []string{"title", "name", "company", "category", "author"},
		ServerFiltered:     true,
		ServerFilterFields: []string{"name", "description"},
		Schema:             "spotlight.schema.json",
	}

	// Profiles are designer portfolio records edited through draft sessions.
	Profiles = Type{
		Name:         "profiles",
		Label:        "Profiles",
		Table:        "profiles",
		Bucket:       BucketProfilePhotos,
		SearchFields: []string{"name", "title"},
		Schema:       "profile.schema.json",
	}
)

// All returns every registered entity type in display order.
func All() []Type {
	return []Type{Articles, Jobs, Theories, Videos, Spotlights, Profiles}
}

// ByName looks up an entity type by its API name.
func ByName(name string) (Type, bool) {
	for _, t := range All() {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}
