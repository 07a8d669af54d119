package head

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptPort feeds scripted response bytes and records writes.
type scriptPort struct {
	responses bytes.Buffer
	written   bytes.Buffer
}

func (p *scriptPort) Read(b []byte) (int, error) {
	if p.responses.Len() == 0 {
		return 0, io.EOF
	}
	return p.responses.Read(b)
}

func (p *scriptPort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *scriptPort) Close() error                { return nil }
func (p *scriptPort) Flush() error                { return nil }

func newScripted(script string) (*Head, *scriptPort) {
	port := &scriptPort{}
	port.responses.WriteString(script)

	h := New()
	h.ConnectOn(port)
	return h, port
}

func TestCenterCircle(t *testing.T) {
	h, port := newScripted(
		"calibration_points: [{\"x\":1,\"y\":4,\"z\":30,\"converged\":true}," +
			"{\"x\":1,\"y\":-2,\"z\":30,\"converged\":true}," +
			"{\"x\":6,\"y\":1,\"z\":30,\"converged\":true}," +
			"{\"x\":-4,\"y\":1,\"z\":30,\"converged\":true}]\nok\n")

	points, err := h.CenterCircle(time.Second)
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, "M370\n", port.written.String())
	assert.Equal(t, 4.0, points[0].Y)
	assert.Equal(t, -4.0, points[3].X)
}

func TestCenterCircleFirmwareError(t *testing.T) {
	h, _ := newScripted(" ERROR: First probe not touched pin\nok\n")

	_, err := h.CenterCircle(time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "First probe not touched pin")
}

func TestPCBStatus(t *testing.T) {
	h, port := newScripted("{\"border-pads\":1,\"test-pads\":[1,0,1]}\nok\n")

	status, err := h.PCBStatus(time.Second)
	require.NoError(t, err)

	assert.Equal(t, "M371\n", port.written.String())
	assert.Equal(t, 1, status.BorderPads)
	assert.Equal(t, []int{1, 0, 1}, status.TestPads)
}

func TestLightStatus(t *testing.T) {
	h, _ := newScripted("-1\nok\n")

	status, err := h.LightStatus(time.Second)
	require.NoError(t, err)
	assert.Equal(t, -1, status)
}

func TestSetLight(t *testing.T) {
	h, port := newScripted("ok\n")

	require.NoError(t, h.SetLight(128, time.Second))
	assert.Equal(t, "M376 I128\n", port.written.String())
}

func TestTransactTimesOut(t *testing.T) {
	h, _ := newScripted("")

	err := h.Transact("M114", 20*time.Millisecond, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestSendRequiresConnection(t *testing.T) {
	h := New()
	assert.Error(t, h.Send("M114"))
}
