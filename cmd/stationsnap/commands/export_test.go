package commands

type NewArchiver = newArchiver

// SetArgs sets the arguments for the command.
func (a *App) SetArgs(args []string) {
	a.cmd.SetArgs(args)
}

// WithNewArchiver sets the new archiver function for the app.
func WithNewArchiver(na NewArchiver) Options {
	return func(o *options) {
		o.newArchiver = na
	}
}
