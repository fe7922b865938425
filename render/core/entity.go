package core

type EntityId uint32

// Entity is a drawable object: an exclusively owned Transform plus handles to a shared
// mesh and material.
type Entity struct {
	Name     string
	Mesh     AssetId
	Material AssetId

	transform *Transform
}

func NewEntity(name string, mesh, material AssetId) *Entity {
	return &Entity{
		Name:      name,
		Mesh:      mesh,
		Material:  material,
		transform: NewTransform(),
	}
}

func (e *Entity) GetTransform() *Transform { return e.transform }
