package model

// Path represents a file system path.
type Path string

// File represents a scenario file on disk.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// ScenarioSummary is what `list` shows for one scenario file.
type ScenarioSummary struct {
	File      File
	Name      string
	Types     int
	Objects   int
	Overrides int
	Steps     int
	Checks    int
	Err       string
}
