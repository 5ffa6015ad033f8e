package cli

import "ffmtest/internal/config"

// Flags holds command-line flags
type Flags struct {
	Env         string
	Filter      string
	ArtistID    string
	SmartlinkID string
	OutputDir   string
	Timeout     int
	Quiet       bool
	NoSave      bool
	File        string
	Limit       int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Filter:      f.Filter,
		ArtistID:    f.ArtistID,
		SmartlinkID: f.SmartlinkID,
		OutputDir:   f.OutputDir,
		Timeout:     f.Timeout,
		Quiet:       f.Quiet,
		NoSave:      f.NoSave,
	}
}
