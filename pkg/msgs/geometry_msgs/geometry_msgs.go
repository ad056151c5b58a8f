// Package geometry_msgs holds Go representations of the ROS2
// geometry_msgs interfaces the bridge publishes.
package geometry_msgs

import (
	"fmt"

	"github.com/open-teleop/teleop-bridge/pkg/cdr"
)

// ROS2 interface type names
const (
	TypeVector3 = "geometry_msgs/msg/Vector3"
	TypeTwist   = "geometry_msgs/msg/Twist"
)

// twistCDRSize is six doubles without the encapsulation header.
const twistCDRSize = 6 * 8

// Vector3 matches geometry_msgs/msg/Vector3.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Twist matches geometry_msgs/msg/Twist: velocity in free space broken
// into its linear and angular parts.
type Twist struct {
	Linear  Vector3 `json:"linear"`
	Angular Vector3 `json:"angular"`
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func (t Twist) String() string {
	return fmt.Sprintf("Twist{linear: %s, angular: %s}", t.Linear, t.Angular)
}

// TypeName implements middleware.Message.
func (Twist) TypeName() string {
	return TypeTwist
}

// MarshalCDR serializes the twist the way rmw does for a ROS2 publisher.
func (t Twist) MarshalCDR() ([]byte, error) {
	e := cdr.NewEncoder(twistCDRSize)
	t.Linear.encode(e)
	t.Angular.encode(e)
	return e.Bytes(), nil
}

// UnmarshalCDR decodes a serialized geometry_msgs/msg/Twist.
func (t *Twist) UnmarshalCDR(data []byte) error {
	d, err := cdr.NewDecoder(data)
	if err != nil {
		return err
	}
	if err := t.Linear.decode(d); err != nil {
		return fmt.Errorf("linear: %w", err)
	}
	if err := t.Angular.decode(d); err != nil {
		return fmt.Errorf("angular: %w", err)
	}
	return nil
}

// TypeName implements middleware.Message.
func (Vector3) TypeName() string {
	return TypeVector3
}

// MarshalCDR serializes the vector as a standalone message.
func (v Vector3) MarshalCDR() ([]byte, error) {
	e := cdr.NewEncoder(3 * 8)
	v.encode(e)
	return e.Bytes(), nil
}

// UnmarshalCDR decodes a serialized geometry_msgs/msg/Vector3.
func (v *Vector3) UnmarshalCDR(data []byte) error {
	d, err := cdr.NewDecoder(data)
	if err != nil {
		return err
	}
	return v.decode(d)
}

func (v Vector3) encode(e *cdr.Encoder) {
	e.WriteFloat64(v.X)
	e.WriteFloat64(v.Y)
	e.WriteFloat64(v.Z)
}

func (v *Vector3) decode(d *cdr.Decoder) error {
	var err error
	if v.X, err = d.ReadFloat64(); err != nil {
		return err
	}
	if v.Y, err = d.ReadFloat64(); err != nil {
		return err
	}
	v.Z, err = d.ReadFloat64()
	return err
}
