package geometry_msgs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-teleop/teleop-bridge/pkg/cdr"
)

func TestTwistCDRLayout(t *testing.T) {
	twist := Twist{
		Linear:  Vector3{X: 1.0},
		Angular: Vector3{Z: -0.5},
	}

	data, err := twist.MarshalCDR()
	require.NoError(t, err)

	require.Len(t, data, cdr.EncapsulationHeaderSize+twistCDRSize)
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, data[:4])
	// linear.x is the first double, little endian
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, data[4:12])
}

func TestTwistRoundTripPreservesSpecialValues(t *testing.T) {
	twist := Twist{
		Linear:  Vector3{X: math.Inf(1), Y: -0.0, Z: 3.25},
		Angular: Vector3{X: math.MaxFloat64, Y: math.SmallestNonzeroFloat64, Z: -7},
	}

	data, err := twist.MarshalCDR()
	require.NoError(t, err)

	var decoded Twist
	require.NoError(t, decoded.UnmarshalCDR(data))
	assert.Equal(t, twist, decoded)
}

func TestTwistNaNSurvivesEncoding(t *testing.T) {
	data, err := Twist{Linear: Vector3{X: math.NaN()}}.MarshalCDR()
	require.NoError(t, err)

	var decoded Twist
	require.NoError(t, decoded.UnmarshalCDR(data))
	assert.True(t, math.IsNaN(decoded.Linear.X))
}

func TestTwistUnmarshalTruncated(t *testing.T) {
	data, err := Twist{}.MarshalCDR()
	require.NoError(t, err)

	var decoded Twist
	err = decoded.UnmarshalCDR(data[:len(data)-1])
	assert.ErrorIs(t, err, cdr.ErrShortBuffer)
	assert.Contains(t, err.Error(), "angular")
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "geometry_msgs/msg/Twist", Twist{}.TypeName())
	assert.Equal(t, "geometry_msgs/msg/Vector3", Vector3{}.TypeName())
}

func TestStringer(t *testing.T) {
	twist := Twist{Linear: Vector3{X: 1}, Angular: Vector3{Z: 0.5}}
	assert.Equal(t, "Twist{linear: (1, 0, 0), angular: (0, 0, 0.5)}", twist.String())
}
