package recording

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commontypes "github.com/marsyard/marsyard/common/types"
)

func sampleRecord(id string) commontypes.RoverRecord {
	return commontypes.RoverRecord{
		RobotID:      id,
		Position:     commontypes.PlanePoint{X: 12.34, Z: -56.78},
		Height:       3.21,
		Coordinates:  commontypes.PlanePoint{X: 12.34, Z: -56.78},
		BehaviorGoal: "patrol",
		Speed:        1.5,
		Capabilities: commontypes.CapabilityRecord{
			MaxSpeed:         2,
			TurnRate:         0.1,
			SensorRange:      50,
			BatteryCapacity:  100,
			BatteryLevel:     80,
			BatteryDrainRate: 0.01,
		},
	}
}

func TestFileProgressRecorderRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "progress.json")

	recorder := MakeFileProgressRecorder(filename)
	require.NoError(t, recorder.Record(sampleRecord("rover-1")))
	require.NoError(t, recorder.Record(sampleRecord("rover-2")))
	recorder.Close()

	reloaded, err := MakeFileProgressRecorder(filename).Load()
	require.NoError(t, err)

	require.Len(t, reloaded, 2)
	assert.Equal(t, sampleRecord("rover-1"), reloaded["rover-1"])
}

func TestFileProgressRecorderOverwritesSameRover(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "progress.json")

	recorder := MakeFileProgressRecorder(filename)
	require.NoError(t, recorder.Record(sampleRecord("rover-1")))

	updated := sampleRecord("rover-1")
	updated.BehaviorGoal = "findRocks"
	require.NoError(t, recorder.Record(updated))

	reloaded, err := MakeFileProgressRecorder(filename).Load()
	require.NoError(t, err)

	require.Len(t, reloaded, 1)
	assert.Equal(t, "findRocks", reloaded["rover-1"].BehaviorGoal)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	recorder := MakeFileProgressRecorder(filepath.Join(t.TempDir(), "absent.json"))

	records, err := recorder.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEmptyRecorder(t *testing.T) {
	recorder := MakeEmptyRecorder()

	assert.NoError(t, recorder.Record(sampleRecord("rover-1")))

	records, err := recorder.Load()
	assert.NoError(t, err)
	assert.Empty(t, records)
}
