package styles

// Plain glyphs used in lists and the status line. Nerd font icons are not
// assumed.
var (
	IconEntry    = "▤"
	IconSection  = "§"
	IconDirty    = "●"
	IconClean    = "○"
	IconLeaf     = "◇"
	IconBranch   = "◆"
	IconPointer  = "›"
	IconEllipsis = "…"
)
