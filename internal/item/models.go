package item

import "encoding/json"

// Pair is the client-facing view of a source item. Each field holds the stored
// value rendered as JSON; an absent key stays nil and is omitted.
type Pair struct {
	TN json.RawMessage `json:"tn,omitempty"`
	EN json.RawMessage `json:"en,omitempty"`
}

// Entry pairs an item with its positional id (offset + index), not its database _id.
type Entry struct {
	Item Pair  `json:"item"`
	ID   int64 `json:"id"`
}

// Page is one window of the source collection.
type Page struct {
	Offset  int64
	Entries []Entry
}
