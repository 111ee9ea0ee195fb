package web

import (
	"fmt"
	"io/fs"
	"net/http"
)

// Static returns a handler serving files from subdir of fsys, with urlPrefix
// stripped from incoming paths.
func Static(fsys fs.FS, subdir, urlPrefix string) (http.Handler, error) {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return nil, fmt.Errorf("static sub-filesystem %s: %w", subdir, err)
	}
	return http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub))), nil
}
