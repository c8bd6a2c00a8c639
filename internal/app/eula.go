package app

import (
	"path/filepath"

	mupfs "go.mup.dev/mup/internal/adapters/fs"
	"go.trai.ch/zerr"
)

// eulaContent is what Mojang's server expects in eula.txt to start up.
const eulaContent = "# Signed by mup\neula=true\n"

// signEula overwrites eula.txt in the server directory. An existing file is
// replaced so a previously declined eula is accepted too.
func signEula(dir string) error {
	path := filepath.Join(dir, "eula.txt")
	if err := mupfs.WriteFileAtomic(path, []byte(eulaContent)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to sign eula"), "path", path)
	}
	return nil
}
