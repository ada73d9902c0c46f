package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec round-trips a raw yaml map into a typed spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type CrewComponentSpec struct {
	Name       string  `yaml:"name"`
	MoveSpeed  float64 `yaml:"move_speed"`
	ClimbSpeed float64 `yaml:"climb_speed"`
}

type VesselComponentSpec struct {
	Name         string           `yaml:"name"`
	Controllable bool             `yaml:"controllable"`
	Packed       bool             `yaml:"packed"`
	Seats        []SeatSpec       `yaml:"seats"`
	Airlocks     []AirlockSpec    `yaml:"airlocks"`
	Ladders      []LadderSpec     `yaml:"ladders"`
	Hull         *PhysicsBodySpec `yaml:"hull"`
}

type SeatSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type AirlockSpec struct {
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Capacity int     `yaml:"capacity"`
}

type LadderSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

type PhysicsBodySpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
	Sensor     bool    `yaml:"sensor"`
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
}

type CameraComponentSpec struct {
	Mode       string  `yaml:"mode"`
	Smoothness float64 `yaml:"smoothness"`
}

type ScriptComponentSpec struct {
	Path        string `yaml:"path"`
	EveryFrames int    `yaml:"every_frames"`
}
