package appdir

import (
	"fmt"
	"os"
)

// desktopTemplate is the fixed desktop entry shape. Name and Exec always
// carry the application name; Icon carries the configured icon name.
const desktopTemplate = `[Desktop Entry]
Name=%s
Exec=%s
Icon=%s
Type=Application
Categories=Utility;
`

// writeDesktopEntry renders the desktop entry into the layout.
func (a *Assembler) writeDesktopEntry(layout *Layout) error {
	entry := fmt.Sprintf(desktopTemplate, a.cfg.AppName, a.cfg.AppName, a.cfg.IconName)

	return os.WriteFile(layout.DesktopPath, []byte(entry), regularFileMode)
}
