package component

// Persistent marks entities written to save files. ID is stable across saves.
type Persistent struct {
	ID string
}

var PersistentComponent = NewComponent[Persistent]()
