package controller

// MapDelta lists the zones whose output differs between two maps.
type MapDelta struct {
	From    MapID     `json:"from"`
	To      MapID     `json:"to"`
	Changed []Binding `json:"changed,omitempty"`
}

func (d *MapDelta) IsEmpty() bool {
	return d.From == d.To && len(d.Changed) == 0
}

// ComputeDelta reports every zone whose output in new_ differs from old. The reported
// output is the new one, so OutNone means the zone was unbound.
func ComputeDelta(old, new_ *Map) *MapDelta {
	d := &MapDelta{}
	if old != nil {
		d.From = old.ID
	}
	if new_ != nil {
		d.To = new_.ID
	}
	for z := InNone + 1; z < InCount; z++ {
		if o := new_.Output(z); old.Output(z) != o {
			d.Changed = append(d.Changed, Binding{Zone: z, Output: o})
		}
	}
	return d
}
