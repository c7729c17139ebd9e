package hostel

import (
	"fmt"

	"hostel/internal/recordstore"
)

// MaxOccupants is the number of occupant slots on a room form.
const MaxOccupants = 5

var (
	occupantFields  = []string{"studentName", "parentName", "studentMobile", "collegeName"}
	furnitureFields = []string{"chairs", "tables", "beds", "fans"}
)

// NewRoomAllotment reshapes submitted form fields into a room record.
// Missing or empty occupant fields become "" and furniture counts "0".
// Fields outside the room layout are dropped.
func NewRoomAllotment(fields recordstore.Record) recordstore.Record {
	room := recordstore.Record{
		"roomNumber": valueOr(fields, "roomNumber", ""),
	}
	for i := 1; i <= MaxOccupants; i++ {
		for _, f := range occupantFields {
			key := fmt.Sprintf("%s%d", f, i)
			room[key] = valueOr(fields, key, "")
		}
	}
	for _, f := range furnitureFields {
		room[f] = valueOr(fields, f, "0")
	}
	return room
}

// valueOr returns fields[key] unless it is missing, nil or an empty string.
func valueOr(fields recordstore.Record, key, fallback string) any {
	v, ok := fields[key]
	if !ok || v == nil {
		return fallback
	}
	if s, isString := v.(string); isString && s == "" {
		return fallback
	}
	return v
}
