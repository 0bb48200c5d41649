package recording

import (
	commontypes "github.com/marsyard/marsyard/common/types"
)

type EmptyRecorder struct{}

func MakeEmptyRecorder() EmptyRecorder {
	return EmptyRecorder{}
}

func (r EmptyRecorder) Record(record commontypes.RoverRecord) error {
	return nil
}

func (r EmptyRecorder) Load() (map[string]commontypes.RoverRecord, error) {
	return map[string]commontypes.RoverRecord{}, nil
}

func (r EmptyRecorder) Close() {}
