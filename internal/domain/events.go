package domain

// StreamListingIndex is the Redis Stream carrying index sync events.
const StreamListingIndex = "listing:index"

type IndexAction string

const (
	IndexUpsert IndexAction = "upsert"
	IndexDelete IndexAction = "delete"
)

// ListingIndexEvent is appended to the stream when a listing is published or
// unpublished. The worker resolves the full document from the database, so the
// event itself stays minimal.
type ListingIndexEvent struct {
	Kind    ListingKind `json:"kind"`
	ID      int64       `json:"id"`
	Action  IndexAction `json:"action"`
	Attempt int         `json:"attempt"`
}

// StreamMessage is one raw entry read from a stream.
type StreamMessage struct {
	ID   string
	Data string
}

// ListingDocument is the denormalized search document kept in the hosted
// collection, one per published listing.
type ListingDocument struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Country      string   `json:"country"`
	City         string   `json:"city"`
	District     string   `json:"district"`
	Neighborhood string   `json:"neighborhood"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Features     []string `json:"features"`
	AgentName    string   `json:"agent_name,omitempty"`
	AgentPhone   string   `json:"agent_phone,omitempty"`
}
