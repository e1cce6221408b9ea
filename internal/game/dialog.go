package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// SelectConfigFile asks for a JSON config with the native file dialog.
// A cancelled dialog returns an empty path and no error.
func SelectConfigFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Dot Field Config"),
		zenity.FileFilters{{
			Name:     "JSON config",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
