package model

// InsertResult acknowledges a single insert.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   ID   `json:"insertedId"`
}

// UpdateResult acknowledges a single-record update. MatchedCount is zero
// when no record had the given key.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult acknowledges a delete. Deleting a missing record yields a
// zero count, never an error.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Stats is the single platform-wide aggregate.
type Stats struct {
	Users     int64   `json:"users"`
	TotalCamp int64   `json:"totalCamp"`
	Join      int64   `json:"join"`
	Revenue   float64 `json:"revenue"`
}
