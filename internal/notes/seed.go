package notes

// Seed returns the starter notes installed when nothing has been saved yet.
func Seed(date string) []Note {
	return []Note{
		{ID: 1, Text: "Click on any note to mark it as Finished!", Priority: PriorityHigh, Rotation: -0.8, CreatedAt: date},
		{ID: 2, Text: "Pin a new note using the input box above.", Priority: PriorityMedium, Rotation: 1.2, CreatedAt: date},
		{ID: 3, Text: "Change the note color by setting its priority.", Priority: PriorityLow, Completed: true, Rotation: 0.5, CreatedAt: date},
	}
}
