package assets

import _ "embed"

// StringsName is the package name the menus register under.
const StringsName = "umt"

//go:embed strings.yaml
var StringsYAML []byte
