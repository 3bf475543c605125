package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cursor is the shared page cursor. Value is the offset handed to the next reader.
type Cursor struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Value int64              `bson:"ID" json:"ID"`
}

// SourceItem is a translation pair from the read-only source collection.
// tn and en are kept raw: the collection does not guarantee strings, and a
// zero RawValue means the key was absent.
type SourceItem struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TN bson.RawValue      `bson:"tn" json:"-"`
	EN bson.RawValue      `bson:"en" json:"-"`
}

// NewSourceItem builds an item from plain values. A nil value leaves that key absent.
func NewSourceItem(tn, en interface{}) SourceItem {
	return SourceItem{TN: rawValue(tn), EN: rawValue(en)}
}

func rawValue(v interface{}) bson.RawValue {
	if v == nil {
		return bson.RawValue{}
	}
	t, data, err := bson.MarshalValue(v)
	if err != nil {
		return bson.RawValue{}
	}
	return bson.RawValue{Type: t, Value: data}
}

// EditRecord is a user-submitted correction. Client values are stored as sent;
// nil is stored as BSON null.
type EditRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrigID     interface{}        `bson:"orig_id" json:"orig_id"`
	ModifiedTN interface{}        `bson:"modified_tn" json:"modified_tn"`
	ModifiedEN interface{}        `bson:"modified_en" json:"modified_en"`
	Status     interface{}        `bson:"status" json:"status"`
	CreatedAt  string             `bson:"created_at" json:"created_at"`
}
