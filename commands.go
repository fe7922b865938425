package lumen

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops the app after the current frame finishes.
func (cmd *Commands) Exit() {
	if !cmd.app.exiting {
		cmd.app.Logger().Infof("exit requested")
	}
	cmd.app.exiting = true
}

func (cmd *Commands) Exiting() bool { return cmd.app.exiting }
