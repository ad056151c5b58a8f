package rosparser

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
)

func TestParseTwistToJSON(t *testing.T) {
	data, err := geometry_msgs.Twist{
		Linear:  geometry_msgs.Vector3{X: 0.5},
		Angular: geometry_msgs.Vector3{Z: -1},
	}.MarshalCDR()
	require.NoError(t, err)

	parsed, err := ParseToJSON(geometry_msgs.TypeTwist, data)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"linear":  map[string]interface{}{"x": 0.5, "y": 0.0, "z": 0.0},
		"angular": map[string]interface{}{"x": 0.0, "y": 0.0, "z": -1.0},
	}, parsed)
}

func TestParseErrors(t *testing.T) {
	var perr *Error

	_, err := ParseToJSON(geometry_msgs.TypeTwist, nil)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrorInvalidMsg, perr.Code)

	_, err = ParseToJSON("sensor_msgs/msg/Image", []byte{0, 1, 0, 0})
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrorUnsupported, perr.Code)

	_, err = ParseToJSON(geometry_msgs.TypeTwist, []byte{0, 1, 0, 0, 1})
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrorInvalidMsg, perr.Code)
}

func TestParseNonFiniteValuesCannotBeRepresented(t *testing.T) {
	data, err := geometry_msgs.Twist{Linear: geometry_msgs.Vector3{X: math.Inf(1)}}.MarshalCDR()
	require.NoError(t, err)

	var perr *Error
	_, err = ParseToJSON(geometry_msgs.TypeTwist, data)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrorSerialization, perr.Code)
}

func TestSupportedTypes(t *testing.T) {
	assert.Equal(t, []string{geometry_msgs.TypeTwist, geometry_msgs.TypeVector3}, SupportedTypes())
}
