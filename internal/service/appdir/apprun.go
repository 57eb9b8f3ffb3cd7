package appdir

import (
	"fmt"
	"os"
)

// appRunTemplate is the launcher script placed at the AppDir root. It
// resolves its own symlink-dereferenced location first, so the packaged
// binary is found regardless of the caller's working directory or how the
// launcher was invoked. Arguments and exit status pass through exec.
const appRunTemplate = `#!/bin/sh
SELF="$(readlink -f "$0")"
HERE="$(dirname "$SELF")"
exec "$HERE/usr/bin/%s" "$@"
`

// writeLauncher generates the AppRun script and marks it executable.
// The content depends only on the application name, so repeated builds
// produce identical launchers.
func (a *Assembler) writeLauncher(layout *Layout) error {
	script := fmt.Sprintf(appRunTemplate, a.cfg.AppName)

	return os.WriteFile(layout.AppRunPath, []byte(script), ExecutableFileMode)
}
