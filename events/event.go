package events

import "reflect"

// Event is the interface that all domain events must implement.
type Event interface {
	Name() string
}

// EventHandler receives every event emitted by a hand, table or lobby.
type EventHandler func(event Event)

// ExtractTableID pulls the TableID field out of any event carrying one.
func ExtractTableID(event Event) string {
	val := reflect.ValueOf(event)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		tableID := val.FieldByName("TableID")
		if tableID.IsValid() && tableID.Kind() == reflect.String {
			return tableID.String()
		}
	}

	return ""
}

// ExtractPlayerID pulls the PlayerID field out of any event carrying one.
func ExtractPlayerID(event Event) string {
	val := reflect.ValueOf(event)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		playerID := val.FieldByName("PlayerID")
		if playerID.IsValid() && playerID.Kind() == reflect.String {
			return playerID.String()
		}
	}

	return ""
}
