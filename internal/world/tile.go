// Package world provides the tile grid that dungeon layouts are generated on.
package world

// TileKind represents the state of a single grid cell.
type TileKind uint8

const (
	// Blank is an unassigned cell.
	Blank TileKind = iota
	// Wall is an impassable cell bordering generated features.
	Wall
	Room
	Passage
	PassageTall
	PassageBalcony
	PassagePillar
	Well
	Pillar
	// Enter marks the dungeon entrance on the map edge.
	Enter

	DoorWood
	DoorWoodLocked
	DoorStone
	DoorStoneLocked
	DoorIron
	DoorIronLocked
	DoorPortcullis
	DoorPortcullisLocked
	DoorSecret
	DoorSecretLocked
	FalseDoor

	StairUp
	StairDown

	// PassageInProgress is a frontier sentinel: an open passage end.
	PassageInProgress
	// Door is a frontier sentinel: a doorway whose style is not rolled yet.
	Door
	// SecretDoorPending is a frontier sentinel normalized to DoorSecret by the scan.
	SecretDoorPending

	numTileKinds
)

var tileNames = [numTileKinds]string{
	Blank:                "blank",
	Wall:                 "wall",
	Room:                 "room",
	Passage:              "passage",
	PassageTall:          "passage_tall",
	PassageBalcony:       "passage_balcony",
	PassagePillar:        "passage_pillar",
	Well:                 "well",
	Pillar:               "pillar",
	Enter:                "enter",
	DoorWood:             "door_wood",
	DoorWoodLocked:       "door_wood_locked",
	DoorStone:            "door_stone",
	DoorStoneLocked:      "door_stone_locked",
	DoorIron:             "door_iron",
	DoorIronLocked:       "door_iron_locked",
	DoorPortcullis:       "door_portcullis",
	DoorPortcullisLocked: "door_portcullis_locked",
	DoorSecret:           "door_secret",
	DoorSecretLocked:     "door_secret_locked",
	FalseDoor:            "false_door",
	StairUp:              "stair_up",
	StairDown:            "stair_down",
	PassageInProgress:    "passage_in_progress",
	Door:                 "door",
	SecretDoorPending:    "secret_door_pending",
}

var tileRunes = [numTileKinds]rune{
	Blank:                ' ',
	Wall:                 '#',
	Room:                 '.',
	Passage:              ',',
	PassageTall:          ':',
	PassageBalcony:       ';',
	PassagePillar:        'o',
	Well:                 'O',
	Pillar:               'I',
	Enter:                'E',
	DoorWood:             '+',
	DoorWoodLocked:       '*',
	DoorStone:            '=',
	DoorStoneLocked:      '%',
	DoorIron:             '&',
	DoorIronLocked:       '$',
	DoorPortcullis:       '|',
	DoorPortcullisLocked: '!',
	DoorSecret:           'S',
	DoorSecretLocked:     's',
	FalseDoor:            'F',
	StairUp:              '<',
	StairDown:            '>',
	PassageInProgress:    '?',
	Door:                 'D',
	SecretDoorPending:    '~',
}

// String returns the snake_case name of the kind.
func (k TileKind) String() string {
	if k >= numTileKinds {
		return "unknown"
	}
	return tileNames[k]
}

// Rune returns the tile's display character.
func (k TileKind) Rune() rune {
	if k >= numTileKinds {
		return '?'
	}
	return tileRunes[k]
}

// ParseTileKind looks a kind up by its String name.
func ParseTileKind(name string) (TileKind, bool) {
	for k, n := range tileNames {
		if n == name {
			return TileKind(k), true
		}
	}
	return Blank, false
}

// AllTileKinds returns every kind in declaration order.
func AllTileKinds() []TileKind {
	kinds := make([]TileKind, numTileKinds)
	for i := range kinds {
		kinds[i] = TileKind(i)
	}
	return kinds
}

// IsSentinel reports whether the kind marks an unexpanded frontier cell.
func (k TileKind) IsSentinel() bool {
	return k == PassageInProgress || k == Door || k == SecretDoorPending
}

// IsDoor reports whether the kind is a concrete (rolled) door style.
func (k TileKind) IsDoor() bool {
	return k >= DoorWood && k <= DoorSecretLocked
}

// IsPassage reports whether the kind belongs to the passage family.
func (k TileKind) IsPassage() bool {
	switch k {
	case Passage, PassageTall, PassageBalcony, PassagePillar:
		return true
	}
	return false
}

// IsFeature reports whether the kind is part of a committed room or passage
// body. A frontier sentinel grows away from its single feature neighbour.
func (k TileKind) IsFeature() bool {
	return k == Room || k == Pillar || k == Well || k.IsPassage()
}
