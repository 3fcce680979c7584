package driven

import "github.com/efrayne/prrelay/internal/domain/model"

// RosterWriter defines the driven port for writing the exported directory
// roster to a tabular file. An existing file at the same path is overwritten.
type RosterWriter interface {
	WriteRoster(path string, users []model.DirectoryUser) error
}
