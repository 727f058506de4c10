package models

// Group represents a set of people sharing expenses, together with every
// expense recorded for them.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Demo Trip").
	Name string `json:"name"`

	// People is the group's roster in insertion order.
	People []Person `json:"people"`

	// Transactions are the group's expenses in insertion order.
	Transactions []Transaction `json:"transactions"`

	// CreatedBy is the ID of the user who created the group, if known.
	CreatedBy string `json:"createdBy,omitempty"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// Person represents one member of a group's roster.
// Names are not unique; identity is the ID.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// UserID optionally links the person to a registered user account.
	UserID string `json:"userId,omitempty"`
}

// FindPerson returns the roster entry with the given ID.
func (g *Group) FindPerson(id string) (Person, bool) {
	for _, p := range g.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// PersonNames maps every roster ID to its display name.
func (g *Group) PersonNames() map[string]string {
	names := make(map[string]string, len(g.People))
	for _, p := range g.People {
		names[p.ID] = p.Name
	}
	return names
}
