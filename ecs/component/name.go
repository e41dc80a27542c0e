package component

// Name is a prefab-given label. The camera finds its target by it.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
