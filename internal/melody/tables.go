package melody

import "time"

// Scale walks D dorian up an octave and back down
var Scale = Melody{
	Name: "scale",
	Notes: []Note{
		{D4, Quarter}, {E4, Quarter}, {F4, Quarter}, {G4, Quarter},
		{A4, Quarter}, {B4, Quarter}, {C5, Quarter}, {D5, Quarter},
		{C5, Quarter}, {B4, Quarter}, {A4, Quarter}, {G4, Quarter},
		{F4, Quarter}, {E4, Quarter}, {D4, Quarter},
	},
	Pause: 500 * time.Millisecond,
}

// Pattern is a short rhythmic riff with rests
var Pattern = Melody{
	Name: "pattern",
	Notes: []Note{
		{D4, Eighth}, {Rest, Eighth}, {D4, Eighth}, {F4, Eighth},
		{A4, Quarter}, {Rest, Eighth}, {G4, Eighth}, {F4, Quarter},
		{E4, Eighth}, {D4, Eighth}, {Rest, Quarter}, {A4, Eighth},
		{C5, Eighth}, {D5, Quarter}, {C5, Eighth}, {A4, Eighth},
		{D4, Half},
	},
	Pause: 700 * time.Millisecond,
}

// Palette is the ordered pitch set the improviser walks over.
// Tonic and fifth appear twice so a random walk lingers on them.
var Palette = []Pitch{
	D4, D4, E4, F4, G4, A4, A4, B4, C5, D5, D5, F5,
}

// Tonic ends a phrase on a cadence
var Tonic = Palette[0]
