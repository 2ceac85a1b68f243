package domain

// ContentItem a tagged learning video, embedded in its subject document
type ContentItem struct {
	ID        string   `bson:"id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Tags      []string `bson:"tags,omitempty" json:"tags,omitempty"`
	SubjectID string   `bson:"subject_id,omitempty" json:"subject_id"`
	ChapterID string   `bson:"chapter_id,omitempty" json:"chapter_id"`
	ViewCount int64    `bson:"view_count" json:"view_count"`
	ObjectKey string   `bson:"object_key" json:"object_key"`
}

// Subject document holding the content catalog for one subject, keyed by chapter
type Subject struct {
	ID       string        `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Contents []ContentItem `bson:"contents,omitempty" json:"contents,omitempty"`
}

// LearnerProfile learning-style tags produced by the assessment workflow, read-only here
type LearnerProfile struct {
	UserID string   `bson:"_id" json:"user_id"`
	Tags   []string `bson:"tags,omitempty" json:"tags,omitempty"`
}

// Recommendation one ranked catalog item, computed per request and never stored
type Recommendation struct {
	Item            ContentItem `json:"item"`
	MatchPercentage int         `json:"match_percentage"`
}

// SimilarItem ranked by raw matching-tag count instead of profile percentage
type SimilarItem struct {
	Item             ContentItem `json:"item"`
	MatchingTagCount int         `json:"matching_tag_count"`
}

// WatchRes usecase watch content response
type WatchRes struct {
	ContentID string `json:"content_id"`
	Name      string `json:"name"`
	WatchURL  string `json:"watch_url"`
}

// ContentViewedEvent emitted to the analytics pipeline on every watch
type ContentViewedEvent struct {
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	ContentID string `json:"content_id"`
	SubjectID string `json:"subject_id"`
	ViewedAt  int64  `json:"viewed_at"`
}
