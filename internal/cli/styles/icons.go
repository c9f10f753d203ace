package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconWindow    = "\uf2d2" // window
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconDoctor  = "\uf0f1" // stethoscope
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconPackage = "\uf187" // archive/package

	IconShield   = "\uf132" // shield
	IconDatabase = "\uf1c0" // database
)
