package component

// Player holds movement tuning and the clip names the movement system plays.
type Player struct {
	WalkSpeed   float64
	RunSpeed    float64
	Reach       float64
	WalkClip    string
	RunClip     string
	HarvestClip string
}

var PlayerComponent = NewComponent[Player]()

// Inventory counts harvested crops by type name.
type Inventory struct {
	Items map[string]int
}

func (inv *Inventory) Add(item string, n int) {
	if inv.Items == nil {
		inv.Items = make(map[string]int)
	}
	inv.Items[item] += n
}

var InventoryComponent = NewComponent[Inventory]()
