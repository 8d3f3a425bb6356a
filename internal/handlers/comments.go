package handlers

import (
	"encoding/json"
	"log"

	"github.com/roomledger-dev/roomledger/internal/comments"
	"gorm.io/datatypes"
)

// Comment lists live inside the parent row as a JSON column, so every
// sub-operation is a decode, mutate, re-encode round trip.

func decodeComments(raw datatypes.JSON) []comments.Comment {
	list := []comments.Comment{}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err != nil {
			log.Printf("Failed to decode comments: %v", err)
		}
	}

	return list
}

func encodeComments(list []comments.Comment) datatypes.JSON {
	raw, err := json.Marshal(list)

	if err != nil {
		log.Printf("Failed to encode comments: %v", err)
		return datatypes.JSON("[]")
	}

	return raw
}

func decodeThreadedComments(raw datatypes.JSON) []comments.ThreadedComment {
	list := []comments.ThreadedComment{}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err != nil {
			log.Printf("Failed to decode comments: %v", err)
		}
	}

	return list
}

func encodeThreadedComments(list []comments.ThreadedComment) datatypes.JSON {
	raw, err := json.Marshal(list)

	if err != nil {
		log.Printf("Failed to encode comments: %v", err)
		return datatypes.JSON("[]")
	}

	return raw
}

func rawComments(raw datatypes.JSON) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("[]")
	}

	return json.RawMessage(raw)
}
