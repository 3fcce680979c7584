package model

// DirectoryUser is one workspace member projected for the roster export.
// Organization comes from a custom profile field; a member without the field
// (or without any custom fields at all) carries an empty string.
type DirectoryUser struct {
	Name         string
	Email        string
	Organization string
	IsBot        bool
}
