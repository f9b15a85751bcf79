package common

import (
	"fmt"
	"strings"
)

// Direction is a four-way facing.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return Down, nil
	case "up":
		return Up, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Down, fmt.Errorf("common: unknown direction %q", s)
}

// MarshalYAML and UnmarshalYAML let prefabs and saves spell directions out.
func (d Direction) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Direction) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
