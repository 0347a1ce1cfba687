package slideshow

import "fmt"

// Version information for the slideshow tool.
const (
	VersionMajor = 1
	VersionMinor = 2
	VersionPatch = 0
)

// Version is the full version string, also written into docProps/app.xml.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
