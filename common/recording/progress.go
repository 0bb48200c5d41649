package recording

import (
	"encoding/json"
	"os"
	"sync"

	bettererrors "github.com/xtuc/better-errors"

	commontypes "github.com/marsyard/marsyard/common/types"
)

// ProgressRecorder persists rover progress records between runs, keyed
// by rover id.
type ProgressRecorder interface {
	Record(record commontypes.RoverRecord) error
	Load() (map[string]commontypes.RoverRecord, error)
	Close()
}

type FileProgressRecorder struct {
	filename string
	mutex    sync.Mutex
	records  map[string]commontypes.RoverRecord
}

func MakeFileProgressRecorder(filename string) *FileProgressRecorder {
	return &FileProgressRecorder{
		filename: filename,
		records:  make(map[string]commontypes.RoverRecord),
	}
}

func (r *FileProgressRecorder) Record(record commontypes.RoverRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.records[record.RobotID] = record

	return r.flush()
}

func (r *FileProgressRecorder) Load() (map[string]commontypes.RoverRecord, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := os.ReadFile(r.filename)
	if os.IsNotExist(err) {
		return map[string]commontypes.RoverRecord{}, nil
	}

	if err != nil {
		return nil, bettererrors.
			New("Could not read progress file").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", r.filename)
	}

	records := make(map[string]commontypes.RoverRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, bettererrors.
			New("Could not decode progress file").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", r.filename)
	}

	r.records = records

	copied := make(map[string]commontypes.RoverRecord, len(records))
	for id, record := range records {
		copied[id] = record
	}

	return copied, nil
}

func (r *FileProgressRecorder) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.flush()
}

// flush is called with the mutex held
func (r *FileProgressRecorder) flush() error {
	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return bettererrors.
			New("Could not encode progress records").
			With(bettererrors.NewFromErr(err))
	}

	if err := os.WriteFile(r.filename, data, 0644); err != nil {
		return bettererrors.
			New("Could not write progress file").
			With(bettererrors.NewFromErr(err)).
			SetContext("filename", r.filename)
	}

	return nil
}
