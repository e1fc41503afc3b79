package model

// EntityKind identifies one of the five content collections that carry
// embedded engagement data. All five look identical to the engagement
// subsystem; only their descriptive fields differ.
type EntityKind string

const (
	KindHotel        EntityKind = "hotel"
	KindEvent        EntityKind = "event"
	KindTreasure     EntityKind = "treasure" // cultural heritage sites
	KindRegion       EntityKind = "region"
	KindPopularPlace EntityKind = "popular_place"
)

// AllEntityKinds lists every kind, in route registration order.
var AllEntityKinds = []EntityKind{
	KindHotel,
	KindEvent,
	KindTreasure,
	KindRegion,
	KindPopularPlace,
}

func (k EntityKind) Valid() bool {
	switch k {
	case KindHotel, KindEvent, KindTreasure, KindRegion, KindPopularPlace:
		return true
	}
	return false
}

// TableName returns the database table backing this kind.
func (k EntityKind) TableName() string {
	switch k {
	case KindHotel:
		return "hotels"
	case KindEvent:
		return "events"
	case KindTreasure:
		return "treasures"
	case KindRegion:
		return "regions"
	case KindPopularPlace:
		return "popular_places"
	}
	return ""
}

// Slug returns the URL path segment for this kind.
func (k EntityKind) Slug() string {
	switch k {
	case KindPopularPlace:
		return "popular-places"
	default:
		return k.TableName()
	}
}

// HasCommentWall reports whether this kind supports visitor comments and
// photo walls. Only regions and cultural sites do.
func (k EntityKind) HasCommentWall() bool {
	return k == KindRegion || k == KindTreasure
}

// EngagementStats are the aggregate fields embedded in every entity table.
// They are derived from the favorites and reviews tables and are only ever
// written together with the underlying set mutation, guarded by Version.
type EngagementStats struct {
	FavoritesCount int     `gorm:"default:0;not null" json:"favorites_count"`
	TotalReviews   int     `gorm:"default:0;not null" json:"total_reviews"`
	AverageRating  float64 `gorm:"default:0;not null" json:"average_rating"`
	Version        int64   `gorm:"default:0;not null" json:"-"`
}

// Entity is implemented by all five content models. The engagement layer
// never touches kind-specific fields, only this surface.
type Entity interface {
	GetID() uint
	EntityKind() EntityKind
	Stats() *EngagementStats
	Apply(req *EntityUpsertRequest)
}

// NewEntity returns a zero value of the model backing the given kind.
func NewEntity(kind EntityKind) Entity {
	switch kind {
	case KindHotel:
		return &Hotel{}
	case KindEvent:
		return &Event{}
	case KindTreasure:
		return &Treasure{}
	case KindRegion:
		return &Region{}
	case KindPopularPlace:
		return &PopularPlace{}
	}
	return nil
}

// NewEntitySlice returns a pointer to an empty slice of the concrete model
// type for the given kind, for use with GORM Find.
func NewEntitySlice(kind EntityKind) interface{} {
	switch kind {
	case KindHotel:
		return &[]Hotel{}
	case KindEvent:
		return &[]Event{}
	case KindTreasure:
		return &[]Treasure{}
	case KindRegion:
		return &[]Region{}
	case KindPopularPlace:
		return &[]PopularPlace{}
	}
	return nil
}
