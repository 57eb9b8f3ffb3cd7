package appdir

import "path/filepath"

// Layout holds the resolved paths of one AppDir build. It is the explicit
// build context threaded through the assembler and the packager, so no
// stage depends on the process working directory.
type Layout struct {
	// Root is the AppDir directory itself, "<work>/<app>.AppDir".
	Root string
	// BinDir is "usr/bin" inside the root.
	BinDir string
	// BinaryPath is the packaged executable, "usr/bin/<app>".
	BinaryPath string
	// DesktopPath is the desktop entry, "<app>.desktop" at the root.
	DesktopPath string
	// IconPath is the icon file referenced by the desktop entry.
	IconPath string
	// AppRunPath is the generated launcher script at the root.
	AppRunPath string
}

// NewLayout resolves the canonical AppDir paths for an application.
// iconName names the icon file and the desktop entry Icon key.
func NewLayout(workDir, appName, iconName string) *Layout {
	root := filepath.Join(workDir, appName+".AppDir")

	return &Layout{
		Root:        root,
		BinDir:      filepath.Join(root, "usr", "bin"),
		BinaryPath:  filepath.Join(root, "usr", "bin", appName),
		DesktopPath: filepath.Join(root, appName+".desktop"),
		IconPath:    filepath.Join(root, iconName+".png"),
		AppRunPath:  filepath.Join(root, "AppRun"),
	}
}
