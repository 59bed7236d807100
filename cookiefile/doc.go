// Package cookiefile stores generated cookies on disk.
//
// A cookie is written as <name>.png with its calibration record next to it
// in <name>.png.json, so a later session can read back the settings that
// produced it:
//
//	s := cookiefile.NewSaver()
//	path, err := s.Save(buf, lightcookie.MetadataFromSettings(settings), dir, "Key", false)
//	...
//	meta, err := cookiefile.LoadMetadata(path)
package cookiefile
