package registry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Face directions, in the order the mesher sweeps them: +X, -X, +Y, -Y, +Z, -Z.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	NumFaces
)

// NoMaterial is the material ID of a face that is never drawn.
const NoMaterial = 0

// MaxMaterials bounds material IDs so they fit in the signed face mask.
const MaxMaterials = math.MaxInt16

var (
	ErrDuplicateName   = errors.New("duplicate name")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrInvalidBlock    = errors.New("invalid block definition")
)

// MaterialDefinition describes how a material looks.
type MaterialDefinition struct {
	Name         string
	Color        mgl32.Vec3 // base vertex color, multiplied by AO
	Alpha        float32    // 1 is fully opaque
	Texture      string     // texture reference, empty for flat color
	TextureAlpha bool       // texture carries its own transparency
	// CustomAppearance names a renderer-side appearance (e.g. a custom shader)
	// used instead of the built-in terrain appearance.
	CustomAppearance string
}

// MaterialData is the read-only view the mesher gets for a material ID.
type MaterialData struct {
	ID int
	MaterialDefinition
}

// BlockDefinition defines the properties of a voxel type.
type BlockDefinition struct {
	ID     uint16
	Name   string
	Solid  bool // participates in AO
	Opaque bool // hides faces of adjacent voxels
	// Materials lists material names: 1 for all faces, 2 for [top/bottom, sides],
	// 3 for [top, bottom, sides] or 6 for [+x, -x, +y, -y, +z, -z].
	Materials []string
}

// Registry holds materials and blocks plus the flat lookup tables the mesher reads.
// Register everything before meshing starts; the registry is not synchronized.
type Registry struct {
	materials   []MaterialData // index = material ID, [0] is the "no material" slot
	materialIDs map[string]int
	blocks      map[uint16]*BlockDefinition
	blockIDs    map[string]uint16
	faceMats    [][NumFaces]int // index = block ID
	solidity    []bool
	opacity     []bool
	version     uint64
}

// New creates a registry containing only air.
func New() *Registry {
	r := &Registry{
		materials:   []MaterialData{{ID: NoMaterial, MaterialDefinition: MaterialDefinition{Name: "", Alpha: 1}}},
		materialIDs: make(map[string]int),
		blocks:      make(map[uint16]*BlockDefinition),
		blockIDs:    make(map[string]uint16),
		faceMats:    make([][NumFaces]int, 1),
		solidity:    make([]bool, math.MaxUint16+1),
		opacity:     make([]bool, math.MaxUint16+1),
	}
	r.blocks[0] = &BlockDefinition{ID: 0, Name: "air"}
	r.blockIDs["air"] = 0
	return r
}

// RegisterMaterial adds a material and returns its ID.
func (r *Registry) RegisterMaterial(def MaterialDefinition) (int, error) {
	if def.Name == "" {
		return 0, fmt.Errorf("material: empty name")
	}
	if _, ok := r.materialIDs[def.Name]; ok {
		return 0, fmt.Errorf("material %q: %w", def.Name, ErrDuplicateName)
	}
	if len(r.materials) > MaxMaterials {
		return 0, fmt.Errorf("material %q: more than %d materials", def.Name, MaxMaterials)
	}
	if def.Alpha <= 0 || def.Alpha > 1 {
		def.Alpha = 1
	}
	id := len(r.materials)
	r.materials = append(r.materials, MaterialData{ID: id, MaterialDefinition: def})
	r.materialIDs[def.Name] = id
	r.version++
	return id, nil
}

// RegisterBlock adds a block. Its materials must already be registered.
func (r *Registry) RegisterBlock(def BlockDefinition) error {
	if def.ID == 0 {
		return fmt.Errorf("block %q: id 0 is reserved for air: %w", def.Name, ErrInvalidBlock)
	}
	if def.Name == "" {
		return fmt.Errorf("block %d: empty name: %w", def.ID, ErrInvalidBlock)
	}
	if _, ok := r.blocks[def.ID]; ok {
		return fmt.Errorf("block id %d: %w", def.ID, ErrDuplicateName)
	}
	if _, ok := r.blockIDs[def.Name]; ok {
		return fmt.Errorf("block %q: %w", def.Name, ErrDuplicateName)
	}

	faces, err := r.expandFaceMaterials(def.Materials)
	if err != nil {
		return fmt.Errorf("block %q: %w", def.Name, err)
	}

	if int(def.ID) >= len(r.faceMats) {
		grown := make([][NumFaces]int, int(def.ID)+1)
		copy(grown, r.faceMats)
		r.faceMats = grown
	}
	r.faceMats[def.ID] = faces
	r.solidity[def.ID] = def.Solid
	r.opacity[def.ID] = def.Opaque

	stored := def
	r.blocks[def.ID] = &stored
	r.blockIDs[def.Name] = def.ID
	r.version++
	return nil
}

func (r *Registry) expandFaceMaterials(names []string) ([NumFaces]int, error) {
	var faces [NumFaces]int
	ids := make([]int, len(names))
	for i, name := range names {
		id, ok := r.materialIDs[name]
		if !ok {
			return faces, fmt.Errorf("material %q: %w", name, ErrUnknownMaterial)
		}
		ids[i] = id
	}

	switch len(ids) {
	case 0:
		// Invisible block: every face resolves to NoMaterial.
	case 1:
		for f := range faces {
			faces[f] = ids[0]
		}
	case 2:
		faces = [NumFaces]int{ids[1], ids[1], ids[0], ids[0], ids[1], ids[1]}
	case 3:
		faces = [NumFaces]int{ids[2], ids[2], ids[0], ids[1], ids[2], ids[2]}
	case NumFaces:
		copy(faces[:], ids)
	default:
		return faces, fmt.Errorf("got %d materials, want 1, 2, 3 or 6: %w", len(ids), ErrInvalidBlock)
	}
	return faces, nil
}

// MaterialID returns the ID of a named material.
func (r *Registry) MaterialID(name string) (int, bool) {
	id, ok := r.materialIDs[name]
	return id, ok
}

// BlockID returns the ID of a named block.
func (r *Registry) BlockID(name string) (uint16, bool) {
	id, ok := r.blockIDs[name]
	return id, ok
}

// Block returns the definition of a block, or nil.
func (r *Registry) Block(id uint16) *BlockDefinition {
	return r.blocks[id]
}

// NumMaterials returns the number of registered materials, excluding NoMaterial.
func (r *Registry) NumMaterials() int {
	return len(r.materials) - 1
}

// SolidityLookup is indexed by voxel ID; solid voxels cast ambient occlusion.
func (r *Registry) SolidityLookup() []bool { return r.solidity }

// OpacityLookup is indexed by voxel ID; opaque voxels hide their neighbors' faces.
func (r *Registry) OpacityLookup() []bool { return r.opacity }

// BlockFaceMaterial returns the material drawn on face dir of a voxel ID.
func (r *Registry) BlockFaceMaterial(id uint16, dir int) int {
	if int(id) >= len(r.faceMats) || dir < 0 || dir >= NumFaces {
		return NoMaterial
	}
	return r.faceMats[id][dir]
}

// MaterialColor returns the base vertex color of a material.
func (r *Registry) MaterialColor(id int) mgl32.Vec3 {
	if id <= 0 || id >= len(r.materials) {
		return mgl32.Vec3{1, 1, 1}
	}
	return r.materials[id].Color
}

// MaterialData returns everything known about a material.
func (r *Registry) MaterialData(id int) MaterialData {
	if id < 0 || id >= len(r.materials) {
		return MaterialData{ID: id, MaterialDefinition: MaterialDefinition{Color: mgl32.Vec3{1, 1, 1}, Alpha: 1}}
	}
	return r.materials[id]
}

// Version increases whenever a material or block is registered. Caches
// derived from registry contents compare it to detect stale entries.
func (r *Registry) Version() uint64 { return r.version }
