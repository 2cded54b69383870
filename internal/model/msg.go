package model

// Screen represents different app screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSearch
	ScreenCategory
	ScreenArea
	ScreenMealDetail
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)

// SearchKind selects which listing action the search input drives.
type SearchKind int

const (
	SearchByName SearchKind = iota
	SearchByIngredient
)

// String returns the label shown next to the search input.
func (k SearchKind) String() string {
	if k == SearchByIngredient {
		return "ingredient"
	}
	return "name"
}
