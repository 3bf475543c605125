package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Persisted layout. Names are fixed; none of them are configurable.
const (
	DatabaseName     = "JPO"
	CursorCollection = "IDS"
	SourceCollection = "DB_0"
	EditCollection   = "DB_1"

	// cursorHex identifies the single cursor document inside CursorCollection.
	cursorHex = "67347e436291c21e7c2d1ad5"
)

// CursorID returns the _id of the shared cursor document.
func CursorID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(cursorHex)
	return id
}
