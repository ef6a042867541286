package runlog

import (
	"encoding/json"
	"path/filepath"

	"wavscribe/internal/config"
	"wavscribe/internal/fileutil"
	"wavscribe/internal/services"
)

// Record is the JSON document written once per run. Field order and names are
// part of the file format.
type Record struct {
	Lang           string `json:"lang"`
	SpeedScale     string `json:"speed_scale"`
	Volume         string `json:"volume"`
	InputPath      string `json:"input_path"`
	OutputPath     string `json:"output_path"`
	InputFilePath  string `json:"input_file_path"`
	RecognisedText string `json:"recognised_text"`
}

// NewRecord copies the run options alongside the resolved input file and text.
func NewRecord(run config.Run, text string) Record {
	return Record{
		Lang:           run.Lang,
		SpeedScale:     run.SpeedScale,
		Volume:         run.Volume,
		InputPath:      run.InputPath,
		OutputPath:     run.OutputPath,
		InputFilePath:  run.InputFile(),
		RecognisedText: text,
	}
}

// Path returns the location of the record for key inside outputDir.
func Path(outputDir, key string) string {
	return filepath.Join(outputDir, key+".json")
}

// Write stores rec as <outputDir>/<key>.json and returns the path. Existing
// files are never replaced.
func Write(outputDir, key string, rec Record) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", services.Wrap(services.ErrWrite, "log", "encode", key, err)
	}
	path := Path(outputDir, key)
	if err := fileutil.WriteExclusive(path, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrWrite, "log", "write", path, err)
	}
	return path, nil
}
