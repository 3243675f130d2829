package model

import "github.com/google/uuid"

// assignID gives a row a client-side UUID so inserts behave the same on every driver.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
